package settings

import "time"

// Settings holds per-user preferences.
type Settings struct {
	UserID             string    `json:"user_id"`
	Currency           string    `json:"currency"`
	DateFormat         string    `json:"date_format"`
	EmailNotifications bool      `json:"email_notifications"`
	Theme              string    `json:"theme"`
	UpdatedAt          time.Time `json:"updated_at"`
}
