package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/mumi-pos-api/pkg/logger"
)

// migration es un paso de esquema con versión única y ascendente. Los pasos ya
// aplicados se omiten; nunca se edita un paso publicado, solo se agregan nuevos.
type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "esquema base: usuarios, catálogo, envíos, lotes y ventas",
		sql: `
		CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name     TEXT NOT NULL DEFAULT '',
			role          TEXT NOT NULL DEFAULT 'user',
			is_active     BOOLEAN NOT NULL DEFAULT TRUE,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			last_login    TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS perfumes (
			id                           BIGSERIAL PRIMARY KEY,
			name                         TEXT NOT NULL,
			volume_ml                    INTEGER NOT NULL DEFAULT 0,
			estimated_decants_per_bottle INTEGER NOT NULL DEFAULT 10,
			is_out_of_stock              BOOLEAN NOT NULL DEFAULT FALSE,
			created_at                   TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS stock_shipments (
			id                        BIGSERIAL PRIMARY KEY,
			name                      TEXT,
			transport_cost            NUMERIC(14,2) NOT NULL DEFAULT 0,
			other_expenses            NUMERIC(14,2) NOT NULL DEFAULT 0,
			total_additional_expenses NUMERIC(14,2) NOT NULL DEFAULT 0,
			purchase_date             DATE NOT NULL,
			funded_from               TEXT NOT NULL DEFAULT 'sales',
			created_at                TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS stock_batches (
			id                     BIGSERIAL PRIMARY KEY,
			shipment_id            BIGINT NOT NULL REFERENCES stock_shipments(id),
			perfume_id             BIGINT NOT NULL REFERENCES perfumes(id),
			quantity               INTEGER NOT NULL CHECK (quantity > 0),
			buying_cost_per_bottle NUMERIC(14,2) NOT NULL,
			subtotal_cost          NUMERIC(14,2) NOT NULL,
			remaining_quantity     INTEGER NOT NULL CHECK (remaining_quantity >= 0),
			created_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
			CHECK (remaining_quantity <= quantity)
		);
		CREATE INDEX IF NOT EXISTS idx_stock_batches_shipment ON stock_batches(shipment_id);
		CREATE INDEX IF NOT EXISTS idx_stock_batches_perfume ON stock_batches(perfume_id);

		CREATE TABLE IF NOT EXISTS sales (
			id             BIGSERIAL PRIMARY KEY,
			customer_name  TEXT,
			payment_method TEXT NOT NULL DEFAULT '',
			total_amount   NUMERIC(14,2) NOT NULL,
			amount_paid    NUMERIC(14,2) NOT NULL,
			debt_amount    NUMERIC(14,2) NOT NULL,
			sale_date      DATE NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_sales_sale_date ON sales(sale_date);

		CREATE TABLE IF NOT EXISTS sale_items (
			id             BIGSERIAL PRIMARY KEY,
			sale_id        BIGINT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
			perfume_id     BIGINT NOT NULL REFERENCES perfumes(id),
			stock_batch_id BIGINT NOT NULL REFERENCES stock_batches(id),
			sale_type      TEXT NOT NULL,
			quantity       INTEGER NOT NULL CHECK (quantity > 0),
			unit_price     NUMERIC(14,2) NOT NULL,
			subtotal       NUMERIC(14,2) NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(sale_id);
		CREATE INDEX IF NOT EXISTS idx_sale_items_batch ON sale_items(stock_batch_id);
		`,
	},
	{
		version: 2,
		name:    "tracking de decantación y registros de botellas",
		sql: `
		CREATE TABLE IF NOT EXISTS decant_tracking (
			id             BIGSERIAL PRIMARY KEY,
			stock_batch_id BIGINT NOT NULL UNIQUE REFERENCES stock_batches(id),
			perfume_id     BIGINT NOT NULL REFERENCES perfumes(id),
			decants_sold   INTEGER NOT NULL DEFAULT 0,
			bottles_sold   INTEGER NOT NULL DEFAULT 0,
			bottles_done   INTEGER NOT NULL DEFAULT 0,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS decant_bottle_logs (
			id                BIGSERIAL PRIMARY KEY,
			stock_batch_id    BIGINT NOT NULL REFERENCES stock_batches(id),
			perfume_id        BIGINT NOT NULL REFERENCES perfumes(id),
			bottle_sequence   INTEGER NOT NULL,
			decants_obtained  INTEGER NOT NULL DEFAULT 0,
			completion_source TEXT NOT NULL,
			completed_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_decant_bottle_logs_batch ON decant_bottle_logs(stock_batch_id);

		CREATE TABLE IF NOT EXISTS deleted_bottles (
			id               BIGSERIAL PRIMARY KEY,
			stock_batch_id   BIGINT NOT NULL REFERENCES stock_batches(id),
			perfume_id       BIGINT NOT NULL REFERENCES perfumes(id),
			quantity_removed INTEGER NOT NULL,
			reason           TEXT NOT NULL,
			note             TEXT,
			removed_at       TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		`,
	},
	{
		version: 3,
		name:    "inventario auxiliar de consumibles con semillas",
		sql: `
		CREATE TABLE IF NOT EXISTS custom_inventory_categories (
			id          BIGSERIAL PRIMARY KEY,
			name        TEXT NOT NULL UNIQUE,
			description TEXT,
			is_active   BOOLEAN NOT NULL DEFAULT TRUE,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS custom_inventory_items (
			id         BIGSERIAL PRIMARY KEY,
			name       TEXT NOT NULL,
			category   TEXT NOT NULL REFERENCES custom_inventory_categories(name),
			unit_label TEXT,
			default_ml NUMERIC(8,2),
			is_active  BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS custom_inventory_stock_entries (
			id                 BIGSERIAL PRIMARY KEY,
			shipment_id        BIGINT REFERENCES stock_shipments(id),
			item_id            BIGINT NOT NULL REFERENCES custom_inventory_items(id),
			quantity_added     INTEGER NOT NULL CHECK (quantity_added > 0),
			remaining_quantity INTEGER NOT NULL CHECK (remaining_quantity >= 0),
			unit_cost          NUMERIC(14,2) NOT NULL,
			purchase_date      DATE NOT NULL,
			note               TEXT,
			created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_custom_entries_item ON custom_inventory_stock_entries(item_id);
		CREATE INDEX IF NOT EXISTS idx_custom_entries_shipment ON custom_inventory_stock_entries(shipment_id);

		INSERT INTO custom_inventory_categories (name, description) VALUES
			('decant_bottle', 'Envases para decants'),
			('polythene', 'Bolsas de polietileno'),
			('packaging', 'Material de empaque')
		ON CONFLICT (name) DO NOTHING;

		INSERT INTO custom_inventory_items (name, category)
		SELECT 'Decant Bottle', 'decant_bottle'
		WHERE NOT EXISTS (SELECT 1 FROM custom_inventory_items WHERE name = 'Decant Bottle');

		INSERT INTO custom_inventory_items (name, category)
		SELECT 'Polythene', 'polythene'
		WHERE NOT EXISTS (SELECT 1 FROM custom_inventory_items WHERE name = 'Polythene');
		`,
	},
	{
		version: 4,
		name:    "libros: abonos, gastos e inversiones con origen explícito",
		sql: `
		CREATE TABLE IF NOT EXISTS debt_payments (
			id             BIGSERIAL PRIMARY KEY,
			sale_id        BIGINT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
			amount_paid    NUMERIC(14,2) NOT NULL CHECK (amount_paid > 0),
			payment_date   DATE NOT NULL,
			payment_method TEXT NOT NULL DEFAULT '',
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_debt_payments_sale ON debt_payments(sale_id);

		CREATE TABLE IF NOT EXISTS expenses (
			id           BIGSERIAL PRIMARY KEY,
			description  TEXT NOT NULL,
			amount       NUMERIC(14,2) NOT NULL CHECK (amount > 0),
			category     TEXT,
			expense_date DATE NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS investments (
			id                 BIGSERIAL PRIMARY KEY,
			description        TEXT NOT NULL,
			amount             NUMERIC(14,2) NOT NULL,
			investment_date    DATE NOT NULL,
			origin             TEXT NOT NULL DEFAULT 'manual',
			source_shipment_id BIGINT REFERENCES stock_shipments(id) ON DELETE SET NULL,
			created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_investments_source_shipment
			ON investments(source_shipment_id) WHERE source_shipment_id IS NOT NULL;
		`,
	},
	{
		version: 5,
		name:    "ajustes manuales de caja y capital",
		sql: `
		CREATE TABLE IF NOT EXISTS cash_adjustments (
			id              BIGSERIAL PRIMARY KEY,
			adjustment_type TEXT NOT NULL,
			previous_amount NUMERIC(14,2) NOT NULL,
			new_amount      NUMERIC(14,2) NOT NULL,
			adjustment      NUMERIC(14,2) NOT NULL,
			reason          TEXT,
			adjusted_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		`,
	},
	{
		version: 6,
		name:    "secuencia de botella única por lote",
		sql: `
		CREATE UNIQUE INDEX IF NOT EXISTS idx_bottle_logs_batch_seq
			ON decant_bottle_logs (stock_batch_id, bottle_sequence);
		`,
	},
}

// Migrate aplica los pasos pendientes en orden, cada uno en su propia
// transacción, y registra la versión alcanzada en schema_migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("crear schema_migrations: %w", err)
	}

	var current int
	err = pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current)
	if err != nil {
		return fmt.Errorf("leer versión de esquema: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin migración %d: %w", m.version, err)
		}
		if _, err := tx.Exec(ctx, m.sql); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("migración %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.version, m.name); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("registrar migración %d: %w", m.version, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit migración %d: %w", m.version, err)
		}
		log.Info().Int("version", m.version).Str("name", m.name).Msg("migración aplicada")
	}
	return nil
}
