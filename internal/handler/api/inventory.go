package api

import (
	"net/http"

	reqdto "github.com/ilya-afanasev/avr-lab-reservation/internal/handler/dto/request"
	resdto "github.com/ilya-afanasev/avr-lab-reservation/internal/handler/dto/response"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/handler/httperr"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	cmds commands.InventoryCommands
}

func NewInventoryHandler(cmds commands.InventoryCommands) *InventoryHandler {
	return &InventoryHandler{cmds: cmds}
}

// @Summary Reconcile inventory
// @Description Replace the stored inventory. Without a body the configured inventory file is read.
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body reqdto.ReconcileRequest false "Inline inventory"
// @Success 200 {object} resdto.ReconcileResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /inventory/reconcile [post]
func (h *InventoryHandler) Reconcile(c *gin.Context) {
	var (
		result *commands.ReconcileResult
		err    error
	)
	if c.Request.ContentLength == 0 {
		result, err = h.cmds.ReconcileFromSource(c.Request.Context())
	} else {
		var req reqdto.ReconcileRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
			return
		}
		entries, convErr := req.ToEntries()
		if convErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, convErr, "Invalid request", nil)
			return
		}
		result, err = h.cmds.Reconcile(c.Request.Context(), entries)
	}
	if err != nil {
		httperr.Abort(c, err, "Reconcile failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReconcileResult(result))
}
