package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type preferencesRequest struct {
	DarkMode *bool `json:"dark_mode" binding:"required" example:"true"`
}

// @Summary      Get preferences
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  models.Preferences
// @Failure      401  {object}  map[string]string
// @Router       /preferences/ [get]
// @Security     BearerAuth
func (h *Handler) getPreferences(c *gin.Context) {
	uid := currentUser(c)
	p, err := h.services.Preferences.Get(c.Request.Context(), uid)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "preferences_get_failed", err, "user_id", uid)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Update preferences
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        body  body      preferencesRequest  true  "Preferences"
// @Success      200   {object}  models.Preferences
// @Failure      400   {object}  map[string]string
// @Router       /preferences/ [put]
// @Security     BearerAuth
func (h *Handler) setPreferences(c *gin.Context) {
	var req preferencesRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	uid := currentUser(c)
	p, err := h.services.Preferences.SetDarkMode(c.Request.Context(), uid, *req.DarkMode)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "preferences_set_failed", err, "user_id", uid)
		return
	}
	c.JSON(http.StatusOK, p)
}
