package types

import (
	ierr "github.com/stitchesx/stitchesx/internal/errors"
)

// InvoiceStatus is the lifecycle status of a persisted invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

func (s InvoiceStatus) Validate() error {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return nil
	}
	return ierr.NewError("invalid invoice status").
		WithHintf("Invoice status %q is not supported", string(s)).
		Mark(ierr.ErrValidation)
}
