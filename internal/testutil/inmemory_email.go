package testutil

import (
	"context"
	"sync"

	"github.com/stitchesx/stitchesx/internal/email"
)

// EmailRecorder implements email.Sender and records every send.
type EmailRecorder struct {
	mu   sync.Mutex
	sent []email.SendEmailRequest
}

func NewEmailRecorder() *EmailRecorder {
	return &EmailRecorder{}
}

func (r *EmailRecorder) SendEmail(ctx context.Context, req email.SendEmailRequest) (*email.SendEmailResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, req)
	return &email.SendEmailResponse{
		MessageID: "test-message",
		Success:   true,
	}, nil
}

// Sent returns a copy of the recorded sends.
func (r *EmailRecorder) Sent() []email.SendEmailRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]email.SendEmailRequest, len(r.sent))
	copy(out, r.sent)
	return out
}
