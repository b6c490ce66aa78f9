package handlers

import (
	"hydroponics/internal/logger"
	"hydroponics/internal/metrics"
	"hydroponics/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	defaultPageSize    = 100
	defaultMaxPageSize = 1000
)

// Options tunes the HTTP layer; zero values fall back to defaults.
type Options struct {
	PageSize    int
	MaxPageSize int
	Metrics     *metrics.Metrics
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services    *service.Service
	log         *logger.Logger
	metrics     *metrics.Metrics
	pageSize    int
	maxPageSize int
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	h := &Handler{
		services:    services,
		log:         log,
		metrics:     opts.Metrics,
		pageSize:    opts.PageSize,
		maxPageSize: opts.MaxPageSize,
	}
	if h.pageSize <= 0 {
		h.pageSize = defaultPageSize
	}
	if h.maxPageSize < h.pageSize {
		h.maxPageSize = max(defaultMaxPageSize, h.pageSize)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if h.metrics != nil {
		router.Use(h.metrics.Middleware())
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Live stream authenticates with ?token= since browsers cannot set headers on upgrade.
	router.GET("/ws/systems/:id", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register/", h.register)
		auth.POST("/login/", h.login)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/", h.userIdMiddleware)
	{
		h.registerSystemRoutes(api)
		h.registerPreferenceRoutes(api)
		h.registerActivityRoutes(api)
	}
}

func (h *Handler) registerSystemRoutes(api *gin.RouterGroup) {
	systems := api.Group("/systems")
	{
		systems.GET("/", h.listSystems)
		systems.POST("/", h.createSystem)
		systems.GET("/:id/", h.getSystem)
		systems.PUT("/:id/", h.updateSystem)
		systems.DELETE("/:id/", h.deleteSystem)

		systems.GET("/:id/measurements/", h.listMeasurements)
		systems.POST("/:id/measurements/", h.createMeasurement)
		systems.GET("/:id/chart/", h.getChart)
	}
}

func (h *Handler) registerPreferenceRoutes(api *gin.RouterGroup) {
	prefs := api.Group("/preferences")
	{
		prefs.GET("/", h.getPreferences)
		prefs.PUT("/", h.setPreferences)
	}
}

func (h *Handler) registerActivityRoutes(api *gin.RouterGroup) {
	activity := api.Group("/activity")
	{
		activity.GET("/", h.getActivity)
	}
}
