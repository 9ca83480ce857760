// File: placemate/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"placemate/config"
	"placemate/database"
	placeRepo "placemate/database/repository/place"
	"placemate/handlers"
	"placemate/middleware"
	"placemate/routes"
	"placemate/services/chat"
	"placemate/services/importer"
	"placemate/services/places"
	"placemate/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	repo := placeRepo.NewMongoPlaceRepo()

	// Providers: a missing credential means the provider stays unavailable
	// for the whole process lifetime and the pipeline runs its fallbacks.
	var detailProvider places.DetailProvider
	var geocoder places.Geocoder
	if config.AppConfig.GoogleAPIKey != "" {
		google := places.NewGooglePlacesProvider(config.AppConfig.GoogleAPIKey)
		detailProvider = google
		geocoder = google
	} else {
		logger.Sugar().Warn("main: no Google API key configured, place enrichment disabled")
	}

	var model chat.LanguageModel
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := chat.NewGeminiClient(config.AppConfig.GeminiAPIKey)
		if err != nil {
			logger.Sugar().Warnf("main: failed to initialize Gemini client, falling back to deterministic replies: %v", err)
		} else {
			model = gemini
		}
	} else {
		logger.Sugar().Warn("main: no Gemini API key configured, using deterministic replies")
	}

	// Session store: Redis when configured, in-memory otherwise.
	var sessions chat.SessionStore
	if config.AppConfig.RedisAddr != "" {
		sessions = chat.NewRedisSessionStore(utils.GetSessionCacheClient(), 30*time.Minute)
	} else {
		sessions = chat.NewMemorySessionStore()
	}

	// Services.
	chatService := chat.NewDefaultChatService(repo, detailProvider, model, sessions)
	importService := importer.NewService(repo)

	chatHandler := handlers.NewChatHandler(chatService)
	placeHandler := handlers.NewPlaceHandler(repo)
	importHandler := handlers.NewImportHandler(importService, repo, geocoder)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ChatHandler: chatHandler.HandleChatMessage,

		ListPlacesHandler:   placeHandler.ListPlacesHandler,
		GetPlaceByIDHandler: placeHandler.GetPlaceByIDHandler,
		DeletePlaceHandler:  placeHandler.DeletePlaceHandler,
		ListNamesHandler:    placeHandler.ListNamesHandler,

		ImportFileHandler:         importHandler.ImportFileHandler,
		ResolveCoordinatesHandler: importHandler.ResolveCoordinatesHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	if config.AppConfig.RedisAddr != "" {
		utils.StartHealthMonitor(utils.GetSessionCacheClient(), database.MongoClient)
	} else {
		utils.StartHealthMonitor(nil, database.MongoClient)
	}

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
