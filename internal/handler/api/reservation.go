package api

import (
	"errors"
	"net/http"

	reqdto "github.com/ilya-afanasev/avr-lab-reservation/internal/handler/dto/request"
	resdto "github.com/ilya-afanasev/avr-lab-reservation/internal/handler/dto/response"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/handler/httperr"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/commands"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errInvalidID = errors.New("invalid id")

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Reserve a resource for a time window on behalf of a user
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationTokenResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err, "Create reservation failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservationResult(result))
}

// @Summary Update reservation
// @Description Move or resize a reservation that has not started; omitted fields keep their values
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Update request"
// @Success 200 {object} resdto.ReservationTokenResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id} [put]
func (h *ReservationHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		httperr.Abort(c, err, "Update reservation failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationResult(result))
}

// @Summary Delete reservation
// @Description Cancel a reservation, including one in progress
// @Tags reservations
// @Param id path int true "Reservation ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err, "Delete reservation failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get reservation by token
// @Description Look up the reservation a token was issued for
// @Tags reservations
// @Produce json
// @Param token path string true "Reservation token"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /reservations/token/{token} [get]
func (h *ReservationHandler) GetByToken(c *gin.Context) {
	view, err := h.q.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		httperr.Abort(c, err, "Failed to load reservation")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, "Failed to load reservation")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description List reservations filtered by user email, external id or resource name
// @Tags reservations
// @Produce json
// @Param email query string false "User email"
// @Param external_id query int false "User external id"
// @Param resource query string false "Resource name"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	var query reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	views, err := h.q.List(c.Request.Context(), query.ToFilter())
	if err != nil {
		httperr.Abort(c, err, "Failed to list reservations")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}
