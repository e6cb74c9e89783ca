package handler

import (
	"log/slog"
	"net/http"

	"github.com/RaymondMik/GetRideApp/internal/middleware"
	"github.com/RaymondMik/GetRideApp/internal/model"
	"github.com/RaymondMik/GetRideApp/internal/service"

	"github.com/gin-gonic/gin"
)

// RideRequestHandler handles ride request related requests
type RideRequestHandler struct {
	service service.RideRequestService
	logger  *slog.Logger
}

// NewRideRequestHandler creates a new RideRequestHandler
func NewRideRequestHandler(s service.RideRequestService, logger *slog.Logger) *RideRequestHandler {
	return &RideRequestHandler{service: s, logger: logger}
}

// Helper to get the authenticated user ID from context
func getAuthUserID(c *gin.Context) (string, bool) {
	user, ok := middleware.GetAuthUser(c)
	if !ok {
		return "", false
	}
	return user.ID, true
}

func (h *RideRequestHandler) List(c *gin.Context) {
	if _, ok := getAuthUserID(c); !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	rideRequests, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": rideRequests})
}

func (h *RideRequestHandler) Get(c *gin.Context) {
	userID, ok := getAuthUserID(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	rr, err := h.service.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rr)
}

func (h *RideRequestHandler) Create(c *gin.Context) {
	userID, ok := getAuthUserID(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	var req model.CreateRideRequestRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	rr, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rr)
}

func (h *RideRequestHandler) Update(c *gin.Context) {
	userID, ok := getAuthUserID(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	var req model.UpdateRideRequestRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	rr, err := h.service.Update(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rideRequest": rr})
}

func (h *RideRequestHandler) Delete(c *gin.Context) {
	userID, ok := getAuthUserID(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	rr, err := h.service.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rr)
}

// RegisterRideRequestRoutes registers ride request routes; all of them require authentication
func (h *RideRequestHandler) RegisterRideRequestRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rides := rg.Group("/ride-requests")
	rides.Use(authMW)
	{
		rides.GET("", h.List)
		rides.POST("", h.Create)
		rides.GET("/:id", h.Get)
		rides.PATCH("/:id", h.Update)
		rides.DELETE("/:id", h.Delete)
	}
}
