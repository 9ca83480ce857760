package handlers

import (
	"net/http"
	"strconv"

	placeRepo "placemate/database/repository/place"
	"placemate/models"
	"placemate/services/chat"
	"placemate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlaceHandler exposes read/browse/delete access to saved places.
type PlaceHandler struct {
	Repo placeRepo.PlaceRepository
}

func NewPlaceHandler(repo placeRepo.PlaceRepository) *PlaceHandler {
	return &PlaceHandler{Repo: repo}
}

// ListPlacesHandler returns saved places, optionally scoped to a list and
// narrowed by the same soft filter rules the chat pipeline uses.
func (h *PlaceHandler) ListPlacesHandler(c *gin.Context) {
	var (
		placeSet []models.Place
		err      error
	)
	if listName := c.Query("list"); listName != "" {
		placeSet, err = h.Repo.GetByListName(listName)
	} else {
		placeSet, err = h.Repo.GetAll()
	}
	if err != nil {
		utils.GetLogger().Error("Failed to load places", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load places", "")
		return
	}

	slots := models.Slots{
		Category: c.Query("category"),
		Cuisine:  c.Query("cuisine"),
		Price:    c.Query("price"),
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	filtered := chat.FilterPlaces(placeSet, slots, limit)

	c.JSON(http.StatusOK, gin.H{"places": filtered, "count": len(filtered)})
}

// GetPlaceByIDHandler returns one saved place.
func (h *PlaceHandler) GetPlaceByIDHandler(c *gin.Context) {
	id := c.Param("id")
	place, err := h.Repo.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch place", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch place", "")
		return
	}
	if place == nil {
		utils.JSONError(c, http.StatusNotFound, "Place not found", id)
		return
	}
	c.JSON(http.StatusOK, place)
}

// DeletePlaceHandler removes one saved place.
func (h *PlaceHandler) DeletePlaceHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.Delete(id); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Place not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// ListNamesHandler returns the distinct saved-list names.
func (h *PlaceHandler) ListNamesHandler(c *gin.Context) {
	names, err := h.Repo.ListNames()
	if err != nil {
		utils.GetLogger().Error("Failed to fetch list names", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch list names", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"lists": names})
}
