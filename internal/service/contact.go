package service

import (
	"context"
	"fmt"

	"github.com/stitchesx/stitchesx/internal/email"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
)

// ContactRequest is an inbound contact-form submission.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// FeedbackRequest is an inbound product-feedback submission.
type FeedbackRequest struct {
	Email   string `json:"email" validate:"omitempty,email"`
	Rating  int    `json:"rating" validate:"required"`
	Message string `json:"message" validate:"omitempty"`
}

// ContactService forwards contact-form and feedback submissions to the
// team inboxes.
type ContactService interface {
	SubmitContactForm(ctx context.Context, req *ContactRequest) error
	SubmitFeedback(ctx context.Context, req *FeedbackRequest) error
}

type contactService struct {
	ServiceParams
}

// NewContactService creates the contact service.
func NewContactService(params ServiceParams) ContactService {
	return &contactService{ServiceParams: params}
}

func (s *contactService) SubmitContactForm(ctx context.Context, req *ContactRequest) error {
	inbox := s.Config.Email.ContactInbox
	if inbox == "" {
		inbox = s.Config.Email.FromAddress
	}

	resp, err := s.EmailSender.SendEmail(ctx, email.SendEmailRequest{
		ToAddress: inbox,
		ReplyTo:   req.Email,
		Subject:   fmt.Sprintf("Contact form: %s", req.Subject),
		Text: fmt.Sprintf("From: %s <%s>\n\n%s",
			req.Name, req.Email, req.Message),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to submit contact form").
			Mark(ierr.ErrSystem)
	}
	if !resp.Success {
		return ierr.NewError("contact form was not delivered").
			WithHint("Email delivery is not available").
			Mark(ierr.ErrSystem)
	}

	s.Logger.Infow("contact form submitted", "from", req.Email)
	return nil
}

func (s *contactService) SubmitFeedback(ctx context.Context, req *FeedbackRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return ierr.NewError("invalid feedback rating").
			WithHint("Rating must be between 1 and 5").
			WithReportableDetails(map[string]interface{}{
				"rating": req.Rating,
			}).
			Mark(ierr.ErrValidation)
	}

	inbox := s.Config.Email.FeedbackInbox
	if inbox == "" {
		inbox = s.Config.Email.FromAddress
	}

	from := req.Email
	if from == "" {
		from = "anonymous"
	}

	resp, err := s.EmailSender.SendEmail(ctx, email.SendEmailRequest{
		ToAddress: inbox,
		Subject:   fmt.Sprintf("Feedback: %d/5", req.Rating),
		Text:      fmt.Sprintf("From: %s\nRating: %d/5\n\n%s", from, req.Rating, req.Message),
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to submit feedback").
			Mark(ierr.ErrSystem)
	}
	if !resp.Success {
		return ierr.NewError("feedback was not delivered").
			WithHint("Email delivery is not available").
			Mark(ierr.ErrSystem)
	}

	s.Logger.Infow("feedback submitted", "rating", req.Rating)
	return nil
}
