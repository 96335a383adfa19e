// Package cache provee el caché de reportes. Los reportes financieros replican
// todo el historial de ventas en cada consulta; cachearlos unos segundos
// absorbe el costo sin comprometer exactitud: toda mutación contable invalida.
package cache

import (
	"context"
	"time"
)

// ReportCache caché de respuestas serializadas de reportes.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	// DeleteByPrefix invalida todas las claves bajo el prefijo (tras una venta,
	// gasto, ajuste o mutación de stock).
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// Noop desactiva el caché: cada consulta recalcula. Es el default cuando no
// hay Redis configurado.
type Noop struct{}

func (Noop) Get(_ context.Context, _ string) ([]byte, bool, error) { return nil, false, nil }

func (Noop) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error { return nil }

func (Noop) DeleteByPrefix(_ context.Context, _ string) error { return nil }
