package repository

import "context"

// BackupTableOrder orden padres-primero para exportar e importar. El borrado
// previo a la importación recorre el mismo orden invertido (hijos primero).
var BackupTableOrder = []string{
	"users",
	"perfumes",
	"custom_inventory_categories",
	"stock_shipments",
	"custom_inventory_items",
	"stock_batches",
	"sales",
	"decant_tracking",
	"decant_bottle_logs",
	"deleted_bottles",
	"sale_items",
	"custom_inventory_stock_entries",
	"debt_payments",
	"expenses",
	"investments",
	"cash_adjustments",
}

// BackupRepository acceso genérico fila-a-fila para respaldo y restauración.
// Las filas se representan como mapas columna → valor para que el sobre JSON
// conserve los nombres de columna tal cual están en la base.
type BackupRepository interface {
	ExportTable(ctx context.Context, table string) ([]map[string]any, error)
	// ImportRows inserta filas tolerando claves duplicadas. Las filas que
	// fallan individualmente (columnas inválidas, tipos incompatibles) no
	// abortan la carga: se devuelven como errores por fila junto al conteo
	// de insertadas. El error final queda para fallas de tabla completa.
	ImportRows(ctx context.Context, table string, rows []map[string]any) (inserted int, rowErrs []error, err error)
	ClearTable(ctx context.Context, table string) error
	// ResetSequence realinea la secuencia de id con max(id) tras importar.
	ResetSequence(ctx context.Context, table string) error
}
