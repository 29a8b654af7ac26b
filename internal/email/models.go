package email

// SendEmailRequest represents a request to send an email. Html and Text
// are both optional but at least one should be set.
type SendEmailRequest struct {
	FromAddress string `json:"from_address" validate:"omitempty,email"`
	ToAddress   string `json:"to_address" validate:"required,email"`
	Subject     string `json:"subject" validate:"required"`
	Html        string `json:"html" validate:"omitempty"`
	Text        string `json:"text" validate:"omitempty"`
	ReplyTo     string `json:"reply_to" validate:"omitempty,email"`
}

// SendEmailResponse represents the response from sending an email
type SendEmailResponse struct {
	MessageID string
	Success   bool
	Error     string
}
