package handlers

import (
	"net/http"

	"hydroponics/internal/measurement"

	"github.com/gin-gonic/gin"
)

// measurementRequest is the create payload. Pointers tell a missing field from zero.
type measurementRequest struct {
	PH          *float64 `json:"ph" binding:"required" example:"6.5"`
	Temperature *float64 `json:"temperature" binding:"required" example:"22.5"`
	TDS         *int     `json:"tds" binding:"required" example:"850"`
}

// @Summary      List measurements
// @Description  Min/max bounds are inclusive. A date-only timestamp_before covers the whole day.
// @Tags         measurements
// @Produce      json
// @Param        id                path   int     true   "System ID"
// @Param        ph_min            query  number  false  "Minimum pH"
// @Param        ph_max            query  number  false  "Maximum pH"
// @Param        temperature_min   query  number  false  "Minimum temperature °C"
// @Param        temperature_max   query  number  false  "Maximum temperature °C"
// @Param        tds_min           query  int     false  "Minimum TDS ppm"
// @Param        tds_max           query  int     false  "Maximum TDS ppm"
// @Param        timestamp_after   query  string  false  "YYYY-MM-DD or RFC3339"
// @Param        timestamp_before  query  string  false  "YYYY-MM-DD or RFC3339"
// @Param        sort_by           query  string  false  "Sort field"  Enums(id,timestamp,ph,temperature,tds)
// @Param        sort_order        query  string  false  "Sort order"  Enums(asc,desc)
// @Param        page              query  int     false  "Page number"
// @Param        page_size         query  int     false  "Page size"
// @Success      200  {object}  map[string]interface{}  "count, next, previous, results"
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /systems/{id}/measurements/ [get]
// @Security     BearerAuth
func (h *Handler) listMeasurements(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	q, err := parseMeasurementQuery(c)
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
	ms, count, err := h.services.Measurements.List(c.Request.Context(), uid, id, q)
	if err != nil {
		h.writeServiceError(c, err, "measurements_list_failed", "user_id", uid, "system_id", id)
		return
	}
	if pageOutOfRange(page, count) {
		detail(c, http.StatusNotFound, errInvalidPage)
		return
	}
	c.JSON(http.StatusOK, newPage(c, page, count, ms))
}

// @Summary      Add measurement
// @Tags         measurements
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "System ID"
// @Param        body  body      measurementRequest  true  "Reading"
// @Success      201   {object}  models.Measurement
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /systems/{id}/measurements/ [post]
// @Security     BearerAuth
func (h *Handler) createMeasurement(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req measurementRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	uid := currentUser(c)
	m, err := h.services.Measurements.Create(c.Request.Context(), uid, id, measurement.Submission{
		PH:          *req.PH,
		Temperature: *req.Temperature,
		TDS:         *req.TDS,
	})
	if err != nil {
		h.writeServiceError(c, err, "measurement_create_failed", "user_id", uid, "system_id", id)
		return
	}
	h.metrics.MeasurementRecorded("api", 1)
	c.JSON(http.StatusCreated, m)
}

// @Summary      Chart series
// @Description  Chart-ready series of the filtered measurements in the caller's theme; chart is null when nothing matches.
// @Tags         measurements
// @Produce      json
// @Param        id   path      int  true  "System ID"
// @Success      200  {object}  map[string]interface{}  "chart"
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /systems/{id}/chart/ [get]
// @Security     BearerAuth
func (h *Handler) getChart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	q, err := parseMeasurementQuery(c)
	if err != nil {
		detail(c, http.StatusBadRequest, err.Error())
		return
	}
	uid := currentUser(c)
	bundle, err := h.services.Measurements.Chart(c.Request.Context(), uid, id, q)
	if err != nil {
		h.writeServiceError(c, err, "chart_failed", "user_id", uid, "system_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chart": bundle})
}
