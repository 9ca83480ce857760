package handlers

import (
	"bytes"
	"io"
	"net/http"
	"path"
	"strings"

	placeRepo "placemate/database/repository/place"
	"placemate/services/importer"
	"placemate/services/places"
	"placemate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxImportSize bounds uploaded export files to 20 MB.
const maxImportSize = 20 << 20

// ImportHandler accepts saved-place export uploads and triggers coordinate
// resolution.
type ImportHandler struct {
	Service  *importer.Service
	Repo     placeRepo.PlaceRepository
	Geocoder places.Geocoder
}

func NewImportHandler(svc *importer.Service, repo placeRepo.PlaceRepository, geocoder places.Geocoder) *ImportHandler {
	return &ImportHandler{Service: svc, Repo: repo, Geocoder: geocoder}
}

// ImportHandler handles POST /api/import with a multipart "file" field
// containing either a CSV (one list) or a ZIP of CSVs.
func (h *ImportHandler) ImportFileHandler(c *gin.Context) {
	logger := utils.GetLogger()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing upload", "expected multipart field 'file'")
		return
	}
	if fileHeader.Size > maxImportSize {
		utils.JSONError(c, http.StatusBadRequest, "Upload too large", "")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open upload", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to read upload", "")
		return
	}
	defer f.Close()

	ext := strings.ToLower(path.Ext(fileHeader.Filename))
	switch ext {
	case ".zip":
		data, err := io.ReadAll(f)
		if err != nil {
			logger.Error("Failed to read upload", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to read upload", "")
			return
		}
		summary, err := h.Service.ImportZip(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			logger.Error("Zip import failed", zap.Error(err))
			utils.JSONError(c, http.StatusBadRequest, "Import failed", err.Error())
			return
		}
		c.JSON(http.StatusOK, summary)
	case ".csv":
		listName := c.PostForm("listName")
		if listName == "" {
			listName = strings.TrimSuffix(path.Base(fileHeader.Filename), ext)
		}
		summary, err := h.Service.ImportCSV(f, listName)
		if err != nil {
			logger.Error("CSV import failed", zap.Error(err))
			utils.JSONError(c, http.StatusBadRequest, "Import failed", err.Error())
			return
		}
		c.JSON(http.StatusOK, summary)
	default:
		utils.JSONError(c, http.StatusBadRequest, "Unsupported file type", "expected .csv or .zip")
	}
}

// ResolveCoordinatesHandler geocodes every saved place that is still missing
// coordinates, paced to respect the provider's rate limit.
func (h *ImportHandler) ResolveCoordinatesHandler(c *gin.Context) {
	if h.Geocoder == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Geocoding is not configured", "")
		return
	}

	resolved, err := importer.ResolveMissingCoordinates(c.Request.Context(), h.Repo, h.Geocoder)
	if err != nil {
		utils.GetLogger().Error("Coordinate resolution failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "Coordinate resolution stopped early",
			"resolved": resolved,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resolved": resolved})
}
