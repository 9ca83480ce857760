package routes

import (
	"net/http"
	"time"

	"placemate/handlers"
	"placemate/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversational recommendation endpoint.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.POST("", hb.ChatHandler)
	}
}

// RegisterPlaceRoutes registers saved-place browse and management endpoints.
func RegisterPlaceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/places")
	{
		api.GET("", hb.ListPlacesHandler)
		api.GET("/lists", hb.ListNamesHandler)
		api.GET("/id/:id", hb.GetPlaceByIDHandler)
		api.DELETE("/id/:id", hb.DeletePlaceHandler)
		api.POST("/resolve-coordinates", hb.ResolveCoordinatesHandler)
	}
}

// RegisterImportRoutes registers the export upload endpoint.
func RegisterImportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/import")
	{
		api.POST("", hb.ImportFileHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes sets up global middleware and mounts every route group.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterChatRoutes(r, hb)
	RegisterPlaceRoutes(r, hb)
	RegisterImportRoutes(r, hb)
	RegisterHealthRoute(r)
}
