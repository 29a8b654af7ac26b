package types

import "context"

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxUserID    ContextKey = "ctx_user_id"
	CtxUserEmail ContextKey = "ctx_user_email"
	CtxClientID  ContextKey = "ctx_client_id"
	CtxJWT       ContextKey = "ctx_jwt"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(CtxUserEmail).(string); ok {
		return email
	}
	return ""
}

// GetClientID returns the anonymous client identifier used for guest
// usage tracking. Empty when the caller sent no client id header.
func GetClientID(ctx context.Context) string {
	if clientID, ok := ctx.Value(CtxClientID).(string); ok {
		return clientID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetJWT(ctx context.Context) string {
	if jwt, ok := ctx.Value(CtxJWT).(string); ok {
		return jwt
	}
	return ""
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// SetClientID sets the anonymous client ID in the context
func SetClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, CtxClientID, clientID)
}

// IsAuthenticated reports whether the context carries a user session
func IsAuthenticated(ctx context.Context) bool {
	return GetUserID(ctx) != ""
}
