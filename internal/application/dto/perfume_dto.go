package dto

import "time"

// CreatePerfumeRequest body para POST /api/perfumes.
type CreatePerfumeRequest struct {
	Name                      string `json:"name"`
	VolumeML                  int    `json:"volume_ml,omitempty"`
	EstimatedDecantsPerBottle *int   `json:"estimated_decants_per_bottle,omitempty"`
}

// UpdatePerfumeRequest body para PUT /api/perfumes/:id. Campos nil no cambian.
type UpdatePerfumeRequest struct {
	Name                      *string `json:"name,omitempty"`
	VolumeML                  *int    `json:"volume_ml,omitempty"`
	EstimatedDecantsPerBottle *int    `json:"estimated_decants_per_bottle,omitempty"`
	IsOutOfStock              *bool   `json:"is_out_of_stock,omitempty"`
}

// PerfumeResponse representación de un perfume en respuestas.
type PerfumeResponse struct {
	ID                        int64     `json:"id"`
	Name                      string    `json:"name"`
	VolumeML                  int       `json:"volume_ml,omitempty"`
	EstimatedDecantsPerBottle int       `json:"estimated_decants_per_bottle"`
	IsOutOfStock              bool      `json:"is_out_of_stock"`
	CreatedAt                 time.Time `json:"created_at"`
}
