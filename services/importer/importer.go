// File: services/importer/importer.go
package importer

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"strings"

	placeRepo "placemate/database/repository/place"
	"placemate/models"
	"placemate/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service ingests saved-place exports (a CSV per list, or a ZIP of CSVs)
// into the place repository. Malformed rows are skipped and counted, never
// fatal to the import.
type Service struct {
	Repo placeRepo.PlaceRepository
}

func NewService(repo placeRepo.PlaceRepository) *Service {
	return &Service{Repo: repo}
}

// ImportCSV parses one list export and upserts its places. The list name is
// usually the export file's base name.
func (s *Service) ImportCSV(r io.Reader, listName string) (*models.ImportSummary, error) {
	summary := &models.ImportSummary{Lists: []string{listName}}
	places, err := s.parseCSV(r, listName, summary)
	if err != nil {
		return nil, err
	}
	if _, err := s.Repo.BulkUpsert(places); err != nil {
		return nil, fmt.Errorf("failed to store imported places: %w", err)
	}
	return summary, nil
}

// ImportZip walks a ZIP archive and imports every CSV entry, one list per
// file. Non-CSV entries are ignored.
func (s *Service) ImportZip(r io.ReaderAt, size int64) (*models.ImportSummary, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive: %w", err)
	}

	summary := &models.ImportSummary{}
	var all []models.Place
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(path.Ext(f.Name), ".csv") {
			continue
		}
		listName := strings.TrimSuffix(path.Base(f.Name), path.Ext(f.Name))

		rc, err := f.Open()
		if err != nil {
			utils.GetLogger().Warn("import: failed to open zip entry",
				zap.String("entry", f.Name), zap.Error(err))
			continue
		}
		places, err := s.parseCSV(rc, listName, summary)
		rc.Close()
		if err != nil {
			utils.GetLogger().Warn("import: failed to parse zip entry",
				zap.String("entry", f.Name), zap.Error(err))
			continue
		}
		summary.Lists = append(summary.Lists, listName)
		all = append(all, places...)
	}

	if _, err := s.Repo.BulkUpsert(all); err != nil {
		return nil, fmt.Errorf("failed to store imported places: %w", err)
	}
	return summary, nil
}

// parseCSV reads rows of one list export. Expected columns are Title, Note,
// URL, with optional Tags and Comment columns; header order is detected from
// the first row.
func (s *Service) parseCSV(r io.Reader, listName string, summary *models.ImportSummary) ([]models.Place, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := columnIndex(header)
	if _, ok := cols["title"]; !ok {
		return nil, fmt.Errorf("CSV for list %q has no Title column", listName)
	}

	var places []models.Place
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			summary.Skipped++
			continue
		}

		title := strings.TrimSpace(field(row, cols, "title"))
		if title == "" {
			summary.Skipped++
			continue
		}

		sourceURL := strings.TrimSpace(field(row, cols, "url"))
		place := models.Place{
			ID:        uuid.New().String(),
			Name:      title,
			ListName:  listName,
			Notes:     strings.TrimSpace(field(row, cols, "note")),
			SourceURL: sourceURL,
		}
		if comment := strings.TrimSpace(field(row, cols, "comment")); comment != "" {
			if place.Notes != "" {
				place.Notes += "\n"
			}
			place.Notes += comment
		}
		if tags := field(row, cols, "tags"); tags != "" {
			place.Tags = splitTags(tags)
		}
		if addr := strings.TrimSpace(field(row, cols, "address")); addr != "" {
			place.Address = addr
		}

		if geo := ExtractCoordinates(sourceURL); geo != nil {
			place.Coordinates = geo
			summary.WithCoords++
		}
		if id := ExtractExternalID(sourceURL); id != "" {
			place.ExternalID = id
			summary.WithExternal++
		}

		places = append(places, place)
		summary.Imported++
	}
	return places, nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func splitTags(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var tags []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
