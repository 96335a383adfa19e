package entity

import "time"

// DefaultDecantsPerBottle rendimiento base si el perfume no define uno.
const DefaultDecantsPerBottle = 10

// Perfume es el catálogo base: cada registro define el rendimiento estimado
// de decants por botella, usado por el tracker de botellas terminadas.
type Perfume struct {
	ID                        int64
	Name                      string
	VolumeML                  int
	EstimatedDecantsPerBottle int
	IsOutOfStock              bool
	CreatedAt                 time.Time
}

// DecantBaseline devuelve el rendimiento estimado, con fallback al default.
func (p *Perfume) DecantBaseline() int {
	if p.EstimatedDecantsPerBottle <= 0 {
		return DefaultDecantsPerBottle
	}
	return p.EstimatedDecantsPerBottle
}
