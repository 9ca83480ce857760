package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the route handlers assembled in main.
type HandlerBundle struct {
	// Chat endpoint.
	ChatHandler gin.HandlerFunc

	// Place endpoints.
	ListPlacesHandler   gin.HandlerFunc
	GetPlaceByIDHandler gin.HandlerFunc
	DeletePlaceHandler  gin.HandlerFunc
	ListNamesHandler    gin.HandlerFunc

	// Import endpoints.
	ImportFileHandler         gin.HandlerFunc
	ResolveCoordinatesHandler gin.HandlerFunc
}
