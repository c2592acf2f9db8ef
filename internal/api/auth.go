package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/format"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

type AuthHandler struct {
	authService  service.IAuthService
	loginLimiter *middleware.RateLimiter
	logger       *zap.Logger
}

// NewAuthHandler creates an auth handler. loginLimiter may be nil.
func NewAuthHandler(authService service.IAuthService, loginLimiter *middleware.RateLimiter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		loginLimiter: loginLimiter,
		logger:       logger,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		if h.loginLimiter != nil {
			auth.POST("/login", h.loginLimiter.Middleware(middleware.ByClientIP), h.Login)
		} else {
			auth.POST("/login", h.Login)
		}
		auth.GET("/session", middleware.AuthMiddleware(h.authService), h.Session)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	// an unreadable body is treated as missing fields
	_ = c.ShouldBindJSON(&req)

	account, token, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.AuthResponse{
		Success: true,
		User:    account.User(),
		Token:   token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	_ = c.ShouldBindJSON(&req)

	account, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{
		Success: true,
		User:    account.User(),
		Token:   token,
	})
}

// Session returns the account behind the bearer token
func (h *AuthHandler) Session(c *gin.Context) {
	id, ok := middleware.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, msgNotAuthenticated)
		return
	}

	account, err := h.authService.GetUserByID(c.Request.Context(), uuid.MustParse(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to load session user", zap.String("user_id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{Success: true, User: account.User()})
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, format.Capitalize(err.Error()))
	case errors.Is(err, service.ErrEmailTaken):
		respondError(c, http.StatusConflict, format.Capitalize(err.Error()))
	case errors.Is(err, service.ErrRegisterFieldsRequired),
		errors.Is(err, service.ErrLoginFieldsRequired),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordTooShort):
		respondError(c, http.StatusBadRequest, format.Capitalize(err.Error()))
	default:
		h.logger.Error("auth request failed", zap.String("path", c.FullPath()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}
