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

type UserHandler struct {
	cmds commands.UserCommands
	q    queries.UserQueries
}

func NewUserHandler(cmds commands.UserCommands, q queries.UserQueries) *UserHandler {
	return &UserHandler{cmds: cmds, q: q}
}

// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param request body reqdto.UserRequest true "Email, external id or both"
// @Success 201 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req reqdto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	id, err := h.cmds.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err, "Create user failed")
		return
	}
	h.respond(c, http.StatusCreated, id)
}

// @Summary Update user
// @Description Replace the email or external id; omitted fields keep their values
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body reqdto.UserRequest true "Update request"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UserRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	if err := h.cmds.Update(c.Request.Context(), id, req.ToInput()); err != nil {
		httperr.Abort(c, err, "Update user failed")
		return
	}
	h.respond(c, http.StatusOK, id)
}

// @Summary Delete user
// @Description Remove a user together with its reservations
// @Tags users
// @Param id path int true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err, "Delete user failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	h.respond(c, http.StatusOK, id)
}

// @Summary List users
// @Description Filter by email or external id. With id the single user is returned instead of a list.
// @Tags users
// @Produce json
// @Param id query int false "User ID"
// @Param email query string false "Email"
// @Param external_id query int false "External id"
// @Success 200 {array} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var query reqdto.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	if query.ID != nil && query.Email == "" && query.ExternalID == nil {
		h.respond(c, http.StatusOK, *query.ID)
		return
	}

	views, err := h.q.List(c.Request.Context(), query.ToFilter())
	if err != nil {
		httperr.Abort(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, resdto.FromUserViews(views))
}

func (h *UserHandler) respond(c *gin.Context, status int, id int64) {
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, "Failed to load user")
		return
	}
	c.JSON(status, resdto.FromUserView(view))
}
