package email

import (
	"context"

	"github.com/stitchesx/stitchesx/internal/logger"
)

// Sender is the outbound-mail seam services depend on.
type Sender interface {
	SendEmail(ctx context.Context, req SendEmailRequest) (*SendEmailResponse, error)
}

// Email handles email operations
type Email struct {
	client *Client
	logger *logger.Logger
}

// NewEmail creates a new email service
func NewEmail(client *Client, logger *logger.Logger) Sender {
	return &Email{
		client: client,
		logger: logger,
	}
}

// SendEmail sends an email through the configured client. A disabled
// client logs and returns an unsuccessful response without error, so
// callers in non-production environments degrade gracefully.
func (s *Email) SendEmail(ctx context.Context, req SendEmailRequest) (*SendEmailResponse, error) {
	if !s.client.IsEnabled() {
		s.logger.Warnw("email client is disabled, skipping email send",
			"to", req.ToAddress,
			"subject", req.Subject,
		)
		return &SendEmailResponse{
			Success: false,
			Error:   "email client is disabled",
		}, nil
	}

	fromAddress := req.FromAddress
	if fromAddress == "" {
		fromAddress = s.client.GetFromAddress()
	}

	messageID, err := s.client.SendEmail(ctx, fromAddress, req.ToAddress, req.Subject, req.Html, req.Text)
	if err != nil {
		s.logger.Errorw("failed to send email",
			"error", err,
			"to", req.ToAddress,
			"subject", req.Subject,
		)
		return &SendEmailResponse{
			Success: false,
			Error:   err.Error(),
		}, err
	}

	s.logger.Infow("email sent successfully",
		"message_id", messageID,
		"to", req.ToAddress,
		"subject", req.Subject,
	)

	return &SendEmailResponse{
		MessageID: messageID,
		Success:   true,
	}, nil
}
