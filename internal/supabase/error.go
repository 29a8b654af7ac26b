package supabase

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
)

// CodeNoRows is the PostgREST code returned when a single-object request
// matches no row. Callers that treat "no rows" as a default rather than a
// failure check for it with IsNoRows.
const CodeNoRows = "PGRST116"

// Error is the error body PostgREST returns alongside a 4xx/5xx status.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`

	StatusCode int `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("postgrest: %s (code=%s, status=%d)", e.Message, e.Code, e.StatusCode)
}

// IsNoRows reports whether err is the PostgREST "no rows" condition.
func IsNoRows(err error) bool {
	var pgErr *Error
	if errors.As(err, &pgErr) {
		return pgErr.Code == CodeNoRows
	}
	return false
}

func parseError(statusCode int, body []byte) *Error {
	pgErr := &Error{StatusCode: statusCode}
	if err := json.Unmarshal(body, pgErr); err != nil || pgErr.Message == "" {
		pgErr.Message = string(body)
	}
	return pgErr
}
