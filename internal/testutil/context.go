package testutil

import (
	"context"

	"github.com/stitchesx/stitchesx/internal/types"
)

const (
	TestUserID    = "user_01h9xgsvkmxbbr4tkkv1p6z9kq"
	TestUserEmail = "test@example.com"
)

// SetupContext returns a context carrying an authenticated test user.
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, TestUserID)
	ctx = context.WithValue(ctx, types.CtxUserEmail, TestUserEmail)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}

// SetupGuestContext returns a context for an anonymous caller identified
// only by a client id.
func SetupGuestContext(clientID string) context.Context {
	ctx := context.Background()
	ctx = types.SetClientID(ctx, clientID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
