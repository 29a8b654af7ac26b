package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchesx/stitchesx/internal/api/dto"
	"github.com/stitchesx/stitchesx/internal/auth"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/logger"
)

type AuthHandler struct {
	provider auth.Provider
	logger   *logger.Logger
}

func NewAuthHandler(provider auth.Provider, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		logger:   logger,
	}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.provider.SignUp(c.Request.Context(), auth.AuthRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Errorw("sign up failed", "error", err, "email", req.Email)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		UserID:      resp.UserID,
		AccessToken: resp.AccessToken,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.provider.Login(c.Request.Context(), auth.AuthRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Errorw("login failed", "error", err, "email", req.Email)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		UserID:      resp.UserID,
		AccessToken: resp.AccessToken,
	})
}
