package analytics

import "time"

// Analytics is the per-user usage row. It is the server-side source of
// truth for quota decisions; any client-held counters are a hint only.
type Analytics struct {
	UserID             string    `json:"user_id"`
	InvoicesCreated    int       `json:"invoices_created"`
	PDFExports         int       `json:"pdf_exports"`
	SubscriptionActive bool      `json:"subscription_active"`
	PaidCurrentInvoice bool      `json:"paid_current_invoice"`
	LastActiveAt       time.Time `json:"last_active_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Default returns the zero-usage row for a user with no analytics yet.
func Default(userID string) *Analytics {
	return &Analytics{UserID: userID}
}
