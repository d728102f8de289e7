package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iamasit07/connect4-agent/internal/transport/http/middleware"
)

type RouterOptions struct {
	AllowedOrigins []string
	// JWTSecret enables bearer-token auth on the API when set.
	JWTSecret string
	// Limiter is optional; nil disables rate limiting.
	Limiter middleware.Limiter
	// WebSocket serves GET /ws when set.
	WebSocket http.HandlerFunc
}

func NewRouter(decider Decider, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(opts.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/")
	if opts.JWTSecret != "" {
		api.Use(middleware.AuthMiddleware(opts.JWTSecret))
	}
	if opts.Limiter != nil {
		api.Use(middleware.RateLimitMiddleware(opts.Limiter))
	}

	moveHandler := NewMoveHandler(decider)
	api.POST("/api/move", moveHandler.Move)

	if opts.WebSocket != nil {
		api.GET("/ws", gin.WrapF(opts.WebSocket))
	}

	return router
}
