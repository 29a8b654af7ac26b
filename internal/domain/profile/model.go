package profile

import "time"

// Profile is the user's business identity used to prefill invoices.
type Profile struct {
	UserID         string    `json:"user_id"`
	FullName       string    `json:"full_name"`
	CompanyName    string    `json:"company_name"`
	CompanyAddress string    `json:"company_address"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	AvatarURL      string    `json:"avatar_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
