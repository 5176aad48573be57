package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calendary/calendar"
	"calendary/config"
	"calendary/database"
	tokenRepo "calendary/database/repository/token"
	"calendary/handlers"
	"calendary/middleware"
	"calendary/routes"
	"calendary/services/availability"
	ai "calendary/services/intelligence"
	"calendary/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(routes.CORSMiddleware())

	// repositories.
	tokens := tokenRepo.NewMongoTokenRepo()

	// collaborators.
	oauthCfg := calendar.NewOAuthConfig()
	busyProvider := calendar.NewGoogleProvider(oauthCfg, tokens)

	var drafter ai.ReplyDrafter
	if config.AppConfig.GeminiEnabled {
		geminiClient, err := ai.NewGeminiClient(context.Background(),
			config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
		}
		drafter = geminiClient
	}

	// services.
	availabilityService := &availability.DefaultAvailabilityService{
		Calendar:         busyProvider,
		Drafter:          drafter,
		Cache:            utils.GetCacheClient(),
		WindowDays:       config.AppConfig.SearchWindowDays,
		WorkdayStartHour: config.AppConfig.WorkdayStartHour,
		WorkdayEndHour:   config.AppConfig.WorkdayEndHour,
	}

	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	authHandler := handlers.NewAuthHandler(oauthCfg, tokens, utils.GetAuthCacheClient())

	routes.RegisterHealthRoute(router)
	routes.RegisterAuthRoutes(router, authHandler)
	routes.RegisterAvailabilityRoutes(router, availabilityHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
