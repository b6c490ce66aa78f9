package handlers

import (
	"errors"
	"net/http"

	"hydroponics/internal/service"

	"github.com/gin-gonic/gin"
)

// systemRequest is the create/update payload of a system.
type systemRequest struct {
	Name     string `json:"name" binding:"required" example:"Greenhouse A"`
	Location string `json:"location" example:"Farm #1"`
}

func (r systemRequest) input() service.SystemInput {
	return service.SystemInput{Name: r.Name, Location: r.Location}
}

// @Summary      List systems
// @Description  Owner-scoped, filterable and paginated.
// @Tags         systems
// @Produce      json
// @Param        name            query  string  false  "Case-insensitive substring of the name"
// @Param        location        query  string  false  "Case-insensitive substring of the location"
// @Param        created_after   query  string  false  "YYYY-MM-DD or RFC3339"
// @Param        created_before  query  string  false  "YYYY-MM-DD (end of day inclusive) or RFC3339"
// @Param        sort_by         query  string  false  "Sort field"  Enums(id,name,location,created_at)
// @Param        sort_order      query  string  false  "Sort order"  Enums(asc,desc)
// @Param        page            query  int     false  "Page number"
// @Param        page_size       query  int     false  "Page size"
// @Success      200  {object}  map[string]interface{}  "count, next, previous, results"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /systems/ [get]
// @Security     BearerAuth
func (h *Handler) listSystems(c *gin.Context) {
	q, err := parseSystemQuery(c)
	if err != nil {
		detail(c, http.StatusBadRequest, err.Error())
		return
	}
	page, ok := h.parsePage(c)
	if !ok {
		return
	}
	q.Page = page.repo()

	uid := currentUser(c)
	systems, count, err := h.services.Systems.List(c.Request.Context(), uid, q)
	if err != nil {
		h.writeServiceError(c, err, "systems_list_failed", "user_id", uid)
		return
	}
	if pageOutOfRange(page, count) {
		detail(c, http.StatusNotFound, errInvalidPage)
		return
	}
	c.JSON(http.StatusOK, newPage(c, page, count, systems))
}

// @Summary      Create system
// @Tags         systems
// @Accept       json
// @Produce      json
// @Param        body  body      systemRequest  true  "System"
// @Success      201   {object}  models.System
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /systems/ [post]
// @Security     BearerAuth
func (h *Handler) createSystem(c *gin.Context) {
	var req systemRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	uid := currentUser(c)
	sys, err := h.services.Systems.Create(c.Request.Context(), uid, req.input())
	if err != nil {
		h.writeServiceError(c, err, "system_create_failed", "user_id", uid)
		return
	}
	c.JSON(http.StatusCreated, sys)
}

// @Summary      Get system
// @Description  The system and its 10 newest measurements.
// @Tags         systems
// @Produce      json
// @Param        id   path      int  true  "System ID"
// @Success      200  {object}  models.SystemDetail
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /systems/{id}/ [get]
// @Security     BearerAuth
func (h *Handler) getSystem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	uid := currentUser(c)
	d, err := h.services.Systems.Get(c.Request.Context(), uid, id)
	if err != nil {
		h.writeServiceError(c, err, "system_get_failed", "user_id", uid, "system_id", id)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary      Update system
// @Tags         systems
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "System ID"
// @Param        body  body      systemRequest  true  "System"
// @Success      200   {object}  models.System
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /systems/{id}/ [put]
// @Security     BearerAuth
func (h *Handler) updateSystem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req systemRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	uid := currentUser(c)
	sys, err := h.services.Systems.Update(c.Request.Context(), uid, id, req.input())
	if err != nil {
		h.writeServiceError(c, err, "system_update_failed", "user_id", uid, "system_id", id)
		return
	}
	c.JSON(http.StatusOK, sys)
}

// @Summary      Delete system
// @Description  Also deletes the system's measurements.
// @Tags         systems
// @Param        id   path  int  true  "System ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /systems/{id}/ [delete]
// @Security     BearerAuth
func (h *Handler) deleteSystem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	uid := currentUser(c)
	if err := h.services.Systems.Delete(c.Request.Context(), uid, id); err != nil {
		if errors.Is(err, service.ErrSystemNotFound) {
			detail(c, http.StatusNotFound, errNotFound)
			return
		}
		h.writeServiceError(c, err, "system_delete_failed", "user_id", uid, "system_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}
