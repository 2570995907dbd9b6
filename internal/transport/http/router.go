package httptransport

import (
	"log/slog"

	"github.com/askarovb/auth-service/internal/transport/http/handler"
	"github.com/askarovb/auth-service/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, cityHandler *handler.CityHandler, jwtKey []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(jwtKey)

	// Public auth routes
	auth := r.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/resend-verification", authHandler.ResendVerification)
	auth.GET("/verify", authHandler.Verify)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// Identity-requiring auth routes
	auth.GET("/me", authMW, authHandler.Me)
	auth.POST("/logout", authMW, authHandler.Logout)

	// Protected demo CRUD routes
	cities := r.Group("/cities", authMW)
	cities.POST("", cityHandler.Create)
	cities.GET("", cityHandler.List)
	cities.GET("/:id", cityHandler.GetByID)
	cities.PUT("/:id", cityHandler.Update)
	cities.DELETE("/:id", cityHandler.Delete)

	return r
}
