// Package router wires the HTTP routes to their handlers.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "users_backend/internal/feature/auth/transport/handler"
	"users_backend/internal/feature/auth/transport/middleware"
	servicehandler "users_backend/internal/feature/services/transport/handler"
	userhandler "users_backend/internal/feature/users/transport/handler"
	"users_backend/internal/platform/http/handler"
	"users_backend/internal/platform/metrics"
)

// NewRouter builds the Gin engine with all application routes.
// Everything except registration, login, health and metrics sits
// behind the bearer-token middleware.
func NewRouter(
	authH *authhandler.AuthHandler,
	userH *userhandler.UserHandler,
	serviceH *servicehandler.ServiceHandler,
	verifier middleware.TokenVerifier,
) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(metrics.Middleware())

	// Public
	r.GET("/healthz", handler.Health)
	r.GET("/metrics", metrics.Handler())
	r.POST("/register", userH.Register)
	r.POST("/login", authH.Login)

	// Token-protected
	auth := r.Group("/")
	auth.Use(middleware.AuthRequired(verifier))
	{
		auth.POST("/logout", authH.Logout)
		auth.GET("/me", authH.Me)

		auth.GET("/users", userH.Index)
		auth.GET("/users/:id", userH.Show)
		auth.PUT("/users/:id", userH.Update)
		auth.PATCH("/users/:id/update-password", userH.UpdatePassword)
		auth.DELETE("/users/:id", userH.Delete)
		auth.PATCH("/users/:id/restore", userH.Restore)
		auth.DELETE("/users/:id/annihilate", userH.Annihilate)
		auth.POST("/users/:id/update-avatar", userH.UpdateAvatar)
		auth.DELETE("/users/:id/delete-avatar", userH.DeleteAvatar)

		auth.POST("/steps", serviceH.CreateStep)
		auth.GET("/steps", serviceH.ListSteps)
		auth.DELETE("/steps/:id", serviceH.DeleteStep)
		auth.POST("/services", serviceH.CreateService)
		auth.POST("/services/:id/steps", serviceH.AttachStep)
		auth.POST("/services/:id/dependencies", serviceH.AddDependency)
		auth.GET("/services/:id/execution-order", serviceH.ExecutionOrder)
	}

	return r
}
