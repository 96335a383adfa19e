// Package backup exporta e importa la base completa como un sobre JSON con
// ids originales, para migrar de instancia o restaurar un respaldo.
package backup

import (
	"context"
	"time"

	"github.com/jhoicas/mumi-pos-api/internal/application/dto"
	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
	"github.com/jhoicas/mumi-pos-api/pkg/logger"
)

// EnvelopeVersion versión del formato del sobre.
const EnvelopeVersion = 1

type UseCase struct {
	backupRepo repository.BackupRepository
	log        *logger.Logger
}

func NewUseCase(backupRepo repository.BackupRepository, log *logger.Logger) *UseCase {
	return &UseCase{backupRepo: backupRepo, log: log}
}

// Export serializa todas las tablas en orden padres-primero, con ids intactos.
func (uc *UseCase) Export(ctx context.Context) (*dto.BackupEnvelope, error) {
	env := &dto.BackupEnvelope{
		Version:    EnvelopeVersion,
		ExportedAt: time.Now().UTC(),
		Tables:     make(map[string][]map[string]any, len(repository.BackupTableOrder)),
	}
	for _, table := range repository.BackupTableOrder {
		rows, err := uc.backupRepo.ExportTable(ctx, table)
		if err != nil {
			return nil, err
		}
		env.Tables[table] = rows
	}
	return env, nil
}

// Import restaura un sobre: borra el contenido actual hijos-primero, inserta
// padres-primero tolerando claves duplicadas y realinea las secuencias de id.
// La carga es de mejor esfuerzo: las filas que fallan individualmente se
// registran como advertencias y se cuentan, sin abortar el resto. Las tablas
// desconocidas del sobre se reportan y se ignoran.
func (uc *UseCase) Import(ctx context.Context, env *dto.BackupEnvelope) (*dto.ImportResultResponse, error) {
	if env == nil || env.Version != EnvelopeVersion {
		return nil, domain.ErrInvalidInput
	}

	known := make(map[string]bool, len(repository.BackupTableOrder))
	for _, t := range repository.BackupTableOrder {
		known[t] = true
	}
	var skipped []string
	for name := range env.Tables {
		if !known[name] {
			skipped = append(skipped, name)
		}
	}

	// Hijos primero para no violar claves foráneas
	for i := len(repository.BackupTableOrder) - 1; i >= 0; i-- {
		if err := uc.backupRepo.ClearTable(ctx, repository.BackupTableOrder[i]); err != nil {
			return nil, err
		}
	}

	imported := make(map[string]int, len(env.Tables))
	failed := make(map[string]int)
	for _, table := range repository.BackupTableOrder {
		rows, ok := env.Tables[table]
		if !ok || len(rows) == 0 {
			imported[table] = 0
			continue
		}
		n, rowErrs, err := uc.backupRepo.ImportRows(ctx, table, rows)
		if err != nil {
			return nil, err
		}
		imported[table] = n
		if len(rowErrs) > 0 {
			failed[table] = len(rowErrs)
			for _, rowErr := range rowErrs {
				uc.log.Warn().Err(rowErr).Str("table", table).Msg("fila de respaldo omitida")
			}
		}
		if err := uc.backupRepo.ResetSequence(ctx, table); err != nil {
			return nil, err
		}
	}
	return &dto.ImportResultResponse{Imported: imported, Failed: failed, Skipped: skipped}, nil
}
