package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/RaymondMik/GetRideApp/internal/middleware"
	"github.com/RaymondMik/GetRideApp/internal/service"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles what the router dispatches to. DB may be nil when the
// service runs on the memory store.
type Services struct {
	Auth         service.AuthService
	RideRequests service.RideRequestService
	DB           Pinger
}

// NewRouter builds the gin engine with every route and middleware
func NewRouter(svc Services, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.CORS())
	router.NoRoute(NotFound)

	authMW := middleware.AuthMiddleware(svc.Auth, logger)

	root := router.Group("")
	NewUserHandler(svc.Auth, logger).RegisterUserRoutes(root, authMW)
	NewRideRequestHandler(svc.RideRequests, logger).RegisterRideRequestRoutes(root, authMW)

	router.GET("/health", func(c *gin.Context) {
		if svc.DB == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "memory"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		// Check DB connection
		if err := svc.DB.Ping(ctx); err != nil {
			logger.WarnContext(ctx, "health check failed", slog.Any("error", err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	return router
}
