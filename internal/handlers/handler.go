package handlers

import (
	"net/http"
	"time"

	"daily_diet/internal/logger"
	"daily_diet/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// defaultSessionTTL matches the sessionId cookie lifetime of 7 days.
const defaultSessionTTL = 7 * 24 * time.Hour

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services   *service.Service
	log        *logger.Logger
	sessionTTL time.Duration
}

// NewHandler constructs a new HTTP handler with dependencies. sessionTTL
// controls the session cookie lifetime; zero or negative falls back to the
// 7-day default.
func NewHandler(services *service.Service, log *logger.Logger, sessionTTL time.Duration) *Handler {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &Handler{services: services, log: log, sessionTTL: sessionTTL}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerUserRoutes(router)
	h.registerMealRoutes(router)

	// Live adherence metrics over WebSocket, session-protected.
	router.GET("/ws/metrics", h.sessionMiddleware, h.wsMetrics)

	return router
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	{
		users.POST("", h.signUp)
		users.POST("/session", h.createSession)
	}
}

func (h *Handler) registerMealRoutes(r *gin.Engine) {
	meals := r.Group("/meals", h.sessionMiddleware)
	{
		meals.POST("", h.createMeal)
		meals.GET("", h.listMeals)
		meals.GET("/metrics", h.getMetrics)
		meals.GET("/:id", h.getMeal)
		meals.PUT("/:id", h.updateMeal)
		meals.DELETE("/:id", h.deleteMeal)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
