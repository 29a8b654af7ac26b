package service

import (
	"testing"

	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type ContactServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ContactService
}

func TestContactService(t *testing.T) {
	suite.Run(t, new(ContactServiceSuite))
}

func (s *ContactServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewContactService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		Cache:       s.GetCache(),
		EmailSender: s.GetEmailRecorder(),
	})
}

func (s *ContactServiceSuite) TestSubmitContactForm() {
	err := s.service.SubmitContactForm(s.GetContext(), &ContactRequest{
		Name:    "Jamie",
		Email:   "jamie@example.com",
		Subject: "Billing question",
		Message: "How do I change my plan?",
	})
	s.Require().NoError(err)

	sent := s.GetEmailRecorder().Sent()
	s.Require().Len(sent, 1)
	s.Equal("jamie@example.com", sent[0].ReplyTo)
	s.Contains(sent[0].Subject, "Billing question")
}

func (s *ContactServiceSuite) TestSubmitFeedback() {
	err := s.service.SubmitFeedback(s.GetContext(), &FeedbackRequest{
		Email:   "jamie@example.com",
		Rating:  4,
		Message: "Works well",
	})
	s.Require().NoError(err)

	sent := s.GetEmailRecorder().Sent()
	s.Require().Len(sent, 1)
	s.Contains(sent[0].Subject, "4/5")
}

func (s *ContactServiceSuite) TestSubmitFeedbackAnonymous() {
	err := s.service.SubmitFeedback(s.GetContext(), &FeedbackRequest{Rating: 5})
	s.Require().NoError(err)

	sent := s.GetEmailRecorder().Sent()
	s.Require().Len(sent, 1)
	s.Contains(sent[0].Text, "anonymous")
}

func (s *ContactServiceSuite) TestSubmitFeedbackRejectsRatingOutOfRange() {
	for _, rating := range []int{0, 6, -1} {
		err := s.service.SubmitFeedback(s.GetContext(), &FeedbackRequest{Rating: rating})
		s.Require().Error(err)
		s.True(ierr.IsValidation(err))
	}
	s.Empty(s.GetEmailRecorder().Sent())
}
