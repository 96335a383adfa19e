package postgres

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

var _ repository.BackupRepository = (*BackupRepo)(nil)

// BackupRepo acceso genérico fila-a-fila para exportar y restaurar la base.
// Solo opera sobre las tablas de BackupTableOrder; cualquier otro nombre se
// rechaza antes de interpolarlo en SQL.
type BackupRepo struct {
	q Querier
}

func NewBackupRepository(q Querier) *BackupRepo {
	return &BackupRepo{q: q}
}

var backupTables = func() map[string]bool {
	m := make(map[string]bool, len(repository.BackupTableOrder))
	for _, t := range repository.BackupTableOrder {
		m[t] = true
	}
	return m
}()

func checkTable(table string) error {
	if !backupTables[table] {
		return fmt.Errorf("tabla %q no respaldable: %w", table, domain.ErrInvalidInput)
	}
	return nil
}

func (r *BackupRepo) ExportTable(ctx context.Context, table string) ([]map[string]any, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, `SELECT * FROM `+table+` ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	out := []map[string]any{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("leer fila de %s: %w", table, err)
		}
		row := make(map[string]any, len(fields))
		for i, f := range fields {
			row[string(f.Name)] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// identifierRe nombres de columna válidos. El sobre JSON trae los nombres de
// columna del exterior: cualquier cosa fuera de este patrón no se interpola.
var identifierRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func checkColumns(cols []string) error {
	for _, col := range cols {
		if !identifierRe.MatchString(col) {
			return fmt.Errorf("columna %q inválida: %w", col, domain.ErrInvalidInput)
		}
	}
	return nil
}

func (r *BackupRepo) ImportRows(ctx context.Context, table string, rows []map[string]any) (int, []error, error) {
	if err := checkTable(table); err != nil {
		return 0, nil, err
	}
	inserted := 0
	var rowErrs []error
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		// Columnas en orden estable para que el SQL sea determinista.
		cols := make([]string, 0, len(row))
		for col := range row {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		if err := checkColumns(cols); err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("fila %d de %s: %w", i, table, err))
			continue
		}

		placeholders := make([]string, len(cols))
		args := make([]any, len(cols))
		for j, col := range cols {
			placeholders[j] = "$" + strconv.Itoa(j+1)
			args[j] = row[col]
		}
		sql := `INSERT INTO ` + table +
			` (` + strings.Join(cols, ", ") + `) VALUES (` + strings.Join(placeholders, ", ") + `)` +
			` ON CONFLICT DO NOTHING`
		tag, err := r.q.Exec(ctx, sql, args...)
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("fila %d de %s: %w", i, table, err))
			continue
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, rowErrs, nil
}

func (r *BackupRepo) ClearTable(ctx context.Context, table string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM `+table); err != nil {
		return fmt.Errorf("vaciar %s: %w", table, err)
	}
	return nil
}

func (r *BackupRepo) ResetSequence(ctx context.Context, table string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	_, err := r.q.Exec(ctx, `
		SELECT setval(pg_get_serial_sequence('`+table+`', 'id'),
		              COALESCE((SELECT MAX(id) FROM `+table+`), 1),
		              EXISTS (SELECT 1 FROM `+table+`))`)
	if err != nil {
		return fmt.Errorf("realinear secuencia de %s: %w", table, err)
	}
	return nil
}
