package routes

import (
	"net/http"
	"time"

	"calendary/handlers"
	"calendary/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes sets up the slot proposal endpoint.
func RegisterAvailabilityRoutes(r *gin.Engine, ah *handlers.AvailabilityHandler) {
	api := r.Group("/api/availability")
	{
		api.Use(middleware.UserSessionMiddleware())
		api.POST("", ah.ProposeHandler)
	}
}

// RegisterAuthRoutes sets up the Google OAuth and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, auth *handlers.AuthHandler) {
	api := r.Group("/api/auth")
	{
		api.GET("/google", auth.GoogleStartHandler)
		api.GET("/google/callback", auth.GoogleCallbackHandler)
		api.GET("/status", auth.StatusHandler)

		api.POST("/signout", middleware.UserSessionMiddleware(), auth.SignOutHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Calendary"})
	})
}

// CORSMiddleware allows the booking assistant frontend to call the API.
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
