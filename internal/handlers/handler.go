package handlers

import (
	"time"

	"smart_fan/internal/logger"
	"smart_fan/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options tunes the HTTP layer.
type Options struct {
	IngestAPIKey string        // required "apikey" header on /ingest; empty disables the route
	LiveInterval time.Duration // default websocket push interval
	LiveLimit    int           // readings per live evaluation; 0 lets the service decide
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if opts.LiveInterval <= 0 || opts.LiveInterval > maxInterval {
		opts.LiveInterval = defaultInterval
	}
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerIngestRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerIngestRoutes(r *gin.Engine) {
	if h.opts.IngestAPIKey == "" {
		return
	}
	ingest := r.Group("/ingest", h.apiKeyMiddleware)
	{
		// Body example: {"device_id":"fan-1","temp_c":26.4}
		ingest.POST("/readings", h.ingestReading)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		api.GET("/defaults", h.getDefaults)
		api.GET("/readings", h.getReadings)
		h.registerEvaluateRoutes(api)
		api.GET("/runs", h.getRuns)
	}
}

func (h *Handler) registerEvaluateRoutes(api *gin.RouterGroup) {
	evaluate := api.Group("/evaluate")
	{
		evaluate.POST("", h.evaluate)
		evaluate.GET("/live", h.evaluateLive)
	}
}
