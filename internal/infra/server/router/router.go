// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/cash-register/backend/internal/integration/entrypoint/controller"
	"github.com/cash-register/backend/internal/integration/entrypoint/dto"
	"github.com/cash-register/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	authController         *controller.AuthController
	cashRegisterController *controller.CashRegisterController
	loginRateLimiter       *middleware.RateLimiter
	authMiddleware         *middleware.AuthMiddleware
	allowedOrigins         []string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	cashRegisterController *controller.CashRegisterController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	allowedOrigins []string,
) *Router {
	return &Router{
		healthController:       healthController,
		authController:         authController,
		cashRegisterController: cashRegisterController,
		loginRateLimiter:       loginRateLimiter,
		authMiddleware:         authMiddleware,
		allowedOrigins:         allowedOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	dto.RegisterValidations()

	r.engine = gin.New()
	r.engine.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		middleware.CORS(r.allowedOrigins),
	)

	r.setupHealthRoutes()
	r.setupAuthRoutes()
	r.setupCashRegisterRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

func (r *Router) setupAuthRoutes() {
	auth := r.engine.Group("/auth")
	{
		auth.POST("/register", r.authController.Register)
		auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
		auth.POST("/refresh", r.authController.RefreshToken)
		auth.POST("/logout", r.authController.Logout)
	}
}

func (r *Router) setupCashRegisterRoutes() {
	cash := r.engine.Group("/cash-register")
	cash.Use(r.authMiddleware.Authenticate())
	{
		cash.POST("/open", r.cashRegisterController.Open)
		cash.GET("/status", r.cashRegisterController.Status)
		cash.POST("/movement", r.cashRegisterController.RecordMovement)
		cash.POST("/close/:cashId", r.cashRegisterController.Close)
		cash.GET("/history", r.cashRegisterController.History)
		cash.GET("/history/export", r.cashRegisterController.ExportHistory)
		cash.GET("/movements/:cashId", r.cashRegisterController.Movements)
		cash.GET("/barbers", r.cashRegisterController.Barbers)
	}
}

// Engine returns the configured Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
