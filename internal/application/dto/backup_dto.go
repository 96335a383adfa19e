package dto

import "time"

// BackupEnvelope sobre JSON de exportación e importación completa.
type BackupEnvelope struct {
	Version    int                         `json:"version"`
	ExportedAt time.Time                   `json:"exported_at"`
	Tables     map[string][]map[string]any `json:"tables"`
}

// ImportResultResponse filas insertadas por tabla tras una restauración.
type ImportResultResponse struct {
	Imported map[string]int `json:"imported"`
	Failed   map[string]int `json:"failed,omitempty"`  // filas omitidas por errores
	Skipped  []string       `json:"skipped,omitempty"` // tablas desconocidas en el sobre
}
