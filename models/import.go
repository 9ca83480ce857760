package models

// ImportSummary reports the outcome of one CSV/ZIP import.
type ImportSummary struct {
	Lists        []string `json:"lists"`
	Imported     int      `json:"imported"`
	Skipped      int      `json:"skipped"`
	WithCoords   int      `json:"withCoords"`
	WithExternal int      `json:"withExternal"`
}
