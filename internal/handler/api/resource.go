package api

import (
	"net/http"

	reqdto "github.com/ilya-afanasev/avr-lab-reservation/internal/handler/dto/request"
	resdto "github.com/ilya-afanasev/avr-lab-reservation/internal/handler/dto/response"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/handler/httperr"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	q    queries.ResourceQueries
	cmds commands.ReservationCommands
}

func NewResourceHandler(q queries.ResourceQueries, cmds commands.ReservationCommands) *ResourceHandler {
	return &ResourceHandler{q: q, cmds: cmds}
}

// @Summary List resources
// @Tags resources
// @Produce json
// @Param type query string false "Resource type"
// @Param name query string false "Resource name"
// @Param available query bool false "Availability"
// @Success 200 {array} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Router /resources [get]
func (h *ResourceHandler) List(c *gin.Context) {
	var query reqdto.ListResourcesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	views, err := h.q.List(c.Request.Context(), query.ToFilter())
	if err != nil {
		httperr.Abort(c, err, "Failed to list resources")
		return
	}
	c.JSON(http.StatusOK, resdto.FromResourceViews(views))
}

// @Summary Check overlap
// @Description Report whether a window collides with an existing reservation; touching boundaries count
// @Tags resources
// @Produce json
// @Param id path int true "Resource ID"
// @Param start query string true "Window start (RFC3339)"
// @Param end query string true "Window end (RFC3339)"
// @Param exclude query int false "Reservation ID to ignore"
// @Success 200 {object} resdto.OverlapResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /resources/{id}/overlaps [get]
func (h *ResourceHandler) Overlaps(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var query reqdto.OverlapQuery
	if bindErr := c.ShouldBindQuery(&query); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid query", nil)
		return
	}

	overlaps, err := h.cmds.CheckOverlap(c.Request.Context(), query.ToQuery(id))
	if err != nil {
		httperr.Abort(c, err, "Overlap check failed")
		return
	}
	c.JSON(http.StatusOK, resdto.OverlapResponse{ResourceID: id, Overlaps: overlaps})
}
