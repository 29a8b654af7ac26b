package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/service"
)

type AccountHandler struct {
	accountService service.AccountService
	logger         *logger.Logger
}

func NewAccountHandler(accountService service.AccountService, logger *logger.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// ExportData streams the user's stored data as a JSON download.
func (h *AccountHandler) ExportData(c *gin.Context) {
	export, filename, err := h.accountService.ExportUserData(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, export)
}

// DeleteAccount removes the user's data table by table. Partial failures
// come back as 207 with the per-table map so the client can retry.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	result, err := h.accountService.DeleteAccount(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	status := http.StatusOK
	if !result.Complete {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}
