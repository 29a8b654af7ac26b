package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/service"
	"github.com/stitchesx/stitchesx/internal/validator"
)

type ContactHandler struct {
	contactService service.ContactService
	logger         *logger.Logger
}

func NewContactHandler(contactService service.ContactService, logger *logger.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

func (h *ContactHandler) SubmitContactForm(c *gin.Context) {
	var req service.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}
	if err := validator.ValidateRequest(&req); err != nil {
		c.Error(err)
		return
	}

	if err := h.contactService.SubmitContactForm(c.Request.Context(), &req); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ContactHandler) SubmitFeedback(c *gin.Context) {
	var req service.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	if err := h.contactService.SubmitFeedback(c.Request.Context(), &req); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
