package repository

import (
	"context"

	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/supabase"
	"github.com/stitchesx/stitchesx/internal/types"
)

// requireUser returns the authenticated user id from the context or an
// authentication error. Every repository operation is user-scoped.
func requireUser(ctx context.Context) (string, error) {
	userID := types.GetUserID(ctx)
	if userID == "" {
		return "", ierr.NewError("no user session").
			WithHint("Authentication required").
			Mark(ierr.ErrAuthentication)
	}
	return userID, nil
}

// mapBackendError converts a PostgREST failure into a marked error.
// "no rows" becomes a not-found error so callers can choose to swallow it.
func mapBackendError(err error, hint string) error {
	if err == nil {
		return nil
	}
	if supabase.IsNoRows(err) {
		return ierr.WithError(err).
			WithHint(hint).
			Mark(ierr.ErrNotFound)
	}
	return ierr.WithError(err).
		WithHint(hint).
		Mark(ierr.ErrDatabase)
}
