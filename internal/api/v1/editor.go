package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stitchesx/stitchesx/internal/editor"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/pdf"
	"github.com/stitchesx/stitchesx/internal/service"
)

// EditorHandler exposes the live template-editing session.
type EditorHandler struct {
	store          *editor.Store
	pdfGenerator   pdf.Generator
	billingService service.BillingService
	logger         *logger.Logger
}

func NewEditorHandler(
	store *editor.Store,
	pdfGenerator pdf.Generator,
	billingService service.BillingService,
	logger *logger.Logger,
) *EditorHandler {
	return &EditorHandler{
		store:          store,
		pdfGenerator:   pdfGenerator,
		billingService: billingService,
		logger:         logger,
	}
}

func (h *EditorHandler) GetState(c *gin.Context) {
	state, err := h.store.State(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *EditorHandler) GetActiveTemplate(c *gin.Context) {
	id, err := h.store.ActiveTemplateID(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active_template_id": id})
}

func (h *EditorHandler) SetActiveTemplate(c *gin.Context) {
	state, err := h.store.SetActiveTemplate(c.Request.Context(), c.Param("templateId"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// UpdateState applies a shallow merge of the posted fields onto the
// active template state.
func (h *EditorHandler) UpdateState(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	state, err := h.store.UpdateTemplateState(c.Request.Context(), patch)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *EditorHandler) ToggleElement(c *gin.Context) {
	state, err := h.store.ToggleElement(c.Request.Context(), c.Param("element"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *EditorHandler) AddCustomField(c *gin.Context) {
	var field editor.CustomField
	if err := c.ShouldBindJSON(&field); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	state, err := h.store.AddCustomField(c.Request.Context(), field)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

func (h *EditorHandler) UpdateCustomField(c *gin.Context) {
	var patch editor.CustomFieldPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	state, err := h.store.UpdateCustomField(c.Request.Context(), c.Param("fieldId"), patch)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *EditorHandler) RemoveCustomField(c *gin.Context) {
	state, err := h.store.RemoveCustomField(c.Request.Context(), c.Param("fieldId"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *EditorHandler) AddInvoiceItem(c *gin.Context) {
	state, err := h.store.AddInvoiceItem(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

func (h *EditorHandler) UpdateInvoiceItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		c.Error(ierr.NewError("invalid item id").
			WithHint("Item id must be a number").
			Mark(ierr.ErrValidation))
		return
	}

	var patch editor.InvoiceItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	state, err := h.store.UpdateInvoiceItem(c.Request.Context(), itemID, patch)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *EditorHandler) RemoveInvoiceItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		c.Error(ierr.NewError("invalid item id").
			WithHint("Item id must be a number").
			Mark(ierr.ErrValidation))
		return
	}

	state, err := h.store.RemoveInvoiceItem(c.Request.Context(), itemID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *EditorHandler) CalculateTotals(c *gin.Context) {
	state, err := h.store.CalculateTotals(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// DownloadPDF renders the current editor state. Export is gated on the
// caller's payment status.
func (h *EditorHandler) DownloadPDF(c *gin.Context) {
	ctx := c.Request.Context()

	status, err := h.billingService.CheckPaymentStatus(ctx)
	if err != nil {
		c.Error(err)
		return
	}
	if !status.HasAccess {
		c.Error(ierr.NewError("free limit reached").
			WithHint("Upgrade or pay for this invoice to export it").
			Mark(ierr.ErrPermissionDenied))
		return
	}

	state, err := h.store.State(ctx)
	if err != nil {
		c.Error(err)
		return
	}
	activeID, err := h.store.ActiveTemplateID(ctx)
	if err != nil {
		c.Error(err)
		return
	}

	data := state.ToPDFData(activeID)
	bytes, err := h.pdfGenerator.RenderInvoicePDF(ctx, data)
	if err != nil {
		c.Error(err)
		return
	}

	name := data.InvoiceNumber
	if name == "" {
		name = "draft"
	}
	c.Header("Content-Disposition", `attachment; filename="`+pdf.FileName(name)+`"`)
	c.Data(http.StatusOK, "application/pdf", bytes)
}
