package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

var _ repository.CustomInventoryRepository = (*CustomInventoryRepo)(nil)

// CustomInventoryRepo implementación PostgreSQL del inventario auxiliar.
type CustomInventoryRepo struct {
	q Querier
}

func NewCustomInventoryRepository(q Querier) *CustomInventoryRepo {
	return &CustomInventoryRepo{q: q}
}

func (r *CustomInventoryRepo) ListCategories(ctx context.Context) ([]*entity.CustomInventoryCategory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, description, is_active, created_at
		FROM custom_inventory_categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listar categorías: %w", err)
	}
	defer rows.Close()

	var out []*entity.CustomInventoryCategory
	for rows.Next() {
		var c entity.CustomInventoryCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("escanear categoría: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *CustomInventoryRepo) CreateCategory(ctx context.Context, c *entity.CustomInventoryCategory) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO custom_inventory_categories (name, description, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		c.Name, c.Description, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar categoría: %w", err)
	}
	return nil
}

const itemColumns = `id, name, category, unit_label, default_ml, is_active, created_at`

func scanItem(row pgx.Row) (*entity.CustomInventoryItem, error) {
	var it entity.CustomInventoryItem
	err := row.Scan(&it.ID, &it.Name, &it.Category, &it.UnitLabel, &it.DefaultML, &it.IsActive, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CustomInventoryRepo) ListItems(ctx context.Context, category *string) ([]*entity.CustomInventoryItem, error) {
	sql := `SELECT ` + itemColumns + ` FROM custom_inventory_items`
	var args []any
	if category != nil {
		args = append(args, *category)
		sql += ` WHERE category = $1`
	}
	sql += ` ORDER BY name ASC`

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("listar ítems: %w", err)
	}
	defer rows.Close()

	var out []*entity.CustomInventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("escanear ítem: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *CustomInventoryRepo) GetItem(ctx context.Context, id int64) (*entity.CustomInventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM custom_inventory_items WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consultar ítem %d: %w", id, err)
	}
	return it, nil
}

func (r *CustomInventoryRepo) CreateItem(ctx context.Context, item *entity.CustomInventoryItem) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO custom_inventory_items (name, category, unit_label, default_ml, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		item.Name, item.Category, item.UnitLabel, item.DefaultML, item.IsActive,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insertar ítem: %w", err)
	}
	return nil
}

const entryColumns = `id, shipment_id, item_id, quantity_added, remaining_quantity,
	unit_cost, purchase_date, note, created_at`

func scanEntry(row pgx.Row) (*entity.CustomInventoryStockEntry, error) {
	var e entity.CustomInventoryStockEntry
	err := row.Scan(&e.ID, &e.ShipmentID, &e.ItemID, &e.QuantityAdded, &e.RemainingQuantity,
		&e.UnitCost, &e.PurchaseDate, &e.Note, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *CustomInventoryRepo) CreateEntry(ctx context.Context, e *entity.CustomInventoryStockEntry) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO custom_inventory_stock_entries
			(shipment_id, item_id, quantity_added, remaining_quantity, unit_cost, purchase_date, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		e.ShipmentID, e.ItemID, e.QuantityAdded, e.RemainingQuantity, e.UnitCost, e.PurchaseDate, e.Note,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insertar entrada de consumible: %w", err)
	}
	return nil
}

func (r *CustomInventoryRepo) UpdateEntry(ctx context.Context, e *entity.CustomInventoryStockEntry) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE custom_inventory_stock_entries SET
			quantity_added = $2, remaining_quantity = $3, unit_cost = $4,
			purchase_date = $5, note = $6
		WHERE id = $1`,
		e.ID, e.QuantityAdded, e.RemainingQuantity, e.UnitCost, e.PurchaseDate, e.Note)
	if err != nil {
		return fmt.Errorf("actualizar entrada %d: %w", e.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomInventoryRepo) DeleteEntry(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM custom_inventory_stock_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar entrada %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomInventoryRepo) ListEntries(ctx context.Context, itemID *int64) ([]*entity.CustomInventoryStockEntry, error) {
	sql := `SELECT ` + entryColumns + ` FROM custom_inventory_stock_entries`
	var args []any
	if itemID != nil {
		args = append(args, *itemID)
		sql += ` WHERE item_id = $1`
	}
	sql += ` ORDER BY purchase_date DESC, id DESC`
	return r.queryEntries(ctx, sql, args...)
}

func (r *CustomInventoryRepo) ListEntriesByShipment(ctx context.Context, shipmentID int64) ([]*entity.CustomInventoryStockEntry, error) {
	return r.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM custom_inventory_stock_entries
		WHERE shipment_id = $1 ORDER BY id ASC`, shipmentID)
}

func (r *CustomInventoryRepo) DeleteEntriesByShipment(ctx context.Context, shipmentID int64) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM custom_inventory_stock_entries WHERE shipment_id = $1`, shipmentID)
	if err != nil {
		return fmt.Errorf("eliminar entradas del envío %d: %w", shipmentID, err)
	}
	return nil
}

func (r *CustomInventoryRepo) AvailableForItem(ctx context.Context, itemID int64) (int, error) {
	var available int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(remaining_quantity), 0)
		FROM custom_inventory_stock_entries
		WHERE item_id = $1 AND remaining_quantity > 0`, itemID).Scan(&available)
	if err != nil {
		return 0, fmt.Errorf("stock disponible del ítem %d: %w", itemID, err)
	}
	return available, nil
}

func (r *CustomInventoryRepo) ListOpenEntriesFIFO(ctx context.Context, itemID int64) ([]*entity.CustomInventoryStockEntry, error) {
	// Orden de consumo: compra más antigua primero, desempate por id.
	return r.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM custom_inventory_stock_entries
		WHERE item_id = $1 AND remaining_quantity > 0
		ORDER BY purchase_date ASC, id ASC`, itemID)
}

func (r *CustomInventoryRepo) DecrementEntry(ctx context.Context, entryID int64, qty int) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE custom_inventory_stock_entries
		SET remaining_quantity = remaining_quantity - $2
		WHERE id = $1 AND remaining_quantity >= $2`, entryID, qty)
	if err != nil {
		return fmt.Errorf("descontar entrada %d: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

func (r *CustomInventoryRepo) SumEntriesCostByShipment(ctx context.Context, shipmentID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity_added * unit_cost), 0)
		FROM custom_inventory_stock_entries
		WHERE shipment_id = $1`, shipmentID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sumar costo de consumibles del envío %d: %w", shipmentID, err)
	}
	return total, nil
}

func (r *CustomInventoryRepo) queryEntries(ctx context.Context, sql string, args ...any) ([]*entity.CustomInventoryStockEntry, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("listar entradas de consumibles: %w", err)
	}
	defer rows.Close()

	var out []*entity.CustomInventoryStockEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("escanear entrada: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
