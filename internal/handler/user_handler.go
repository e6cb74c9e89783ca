package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/RaymondMik/GetRideApp/internal/middleware"
	"github.com/RaymondMik/GetRideApp/internal/model"
	"github.com/RaymondMik/GetRideApp/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles signup, login, logout and session lookup
type UserHandler struct {
	service service.AuthService
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.AuthService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: s, logger: logger}
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	user, token, err := h.service.Signup(c.Request.Context(), req.Email, req.Password, req.Type)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header(middleware.AuthHeader, token)
	c.JSON(http.StatusOK, user.Public())
}

func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		// A well-formed body with the wrong field types is a failed login
		if errors.Is(err, service.ErrValidation) {
			err = service.ErrInvalidCredentials
		}
		respondError(c, h.logger, err)
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header(middleware.AuthHeader, token)
	c.JSON(http.StatusOK, user.Public())
}

func (h *UserHandler) Me(c *gin.Context) {
	caller, ok := middleware.GetAuthUser(c)
	if !ok {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, h.service.Me(caller))
}

func (h *UserHandler) Logout(c *gin.Context) {
	caller, ok := middleware.GetAuthUser(c)
	token, hasToken := middleware.GetAuthToken(c)
	if !ok || !hasToken {
		respondError(c, h.logger, service.ErrUnauthorized)
		return
	}

	if err := h.service.Logout(c.Request.Context(), caller, token); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// RegisterUserRoutes registers user and session routes
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	users := rg.Group("/users")
	{
		users.POST("", h.Signup)
		users.POST("/login", h.Login)
		users.GET("/me", authMW, h.Me)
		users.POST("/me/logout", authMW, h.Logout)
	}
}
