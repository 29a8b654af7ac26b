package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchesx/stitchesx/internal/api/dto"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/service"
)

type TemplateHandler struct {
	templateService service.TemplateService
	logger          *logger.Logger
}

func NewTemplateHandler(templateService service.TemplateService, logger *logger.Logger) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
		logger:          logger,
	}
}

func (h *TemplateHandler) SaveTemplate(c *gin.Context) {
	var req dto.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	created, err := h.templateService.SaveTemplate(c.Request.Context(), req.ToTemplate())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	tmpl, err := h.templateService.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templateService.ListTemplates(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTemplatesResponse{
		Items: templates,
		Total: len(templates),
	})
}

func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	var req dto.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	tmpl := req.ToTemplate()
	tmpl.ID = c.Param("id")
	updated, err := h.templateService.UpdateTemplate(c.Request.Context(), tmpl)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.templateService.DeleteTemplate(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *TemplateHandler) SetDefaultTemplate(c *gin.Context) {
	if err := h.templateService.SetDefaultTemplate(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *TemplateHandler) GetDefaultTemplate(c *gin.Context) {
	tmpl, err := h.templateService.GetDefaultTemplate(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	// nil means no default is set
	c.JSON(http.StatusOK, gin.H{"template": tmpl})
}
