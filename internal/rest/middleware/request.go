package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stitchesx/stitchesx/internal/types"
)

// RequestIDMiddleware tags every request with an id for log correlation.
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST)
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)

	// The anonymous client id rides along for guest usage tracking
	if clientID := c.GetHeader(types.HeaderClientID); clientID != "" {
		ctx = types.SetClientID(ctx, clientID)
	}

	c.Request = c.Request.WithContext(ctx)
	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
