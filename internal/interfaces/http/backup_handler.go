package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mumi-pos-api/internal/application/backup"
	"github.com/jhoicas/mumi-pos-api/internal/application/dto"
	"github.com/jhoicas/mumi-pos-api/internal/application/reports"
)

// BackupHandler maneja la exportación y restauración completa de la base.
// Ambas operaciones requieren rol admin.
type BackupHandler struct {
	uc      *backup.UseCase
	reports *reports.UseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *backup.UseCase, reports *reports.UseCase) *BackupHandler {
	return &BackupHandler{uc: uc, reports: reports}
}

// Export godoc
// @Summary      Exportar la base completa como JSON (solo admin)
// @Tags         database
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BackupEnvelope
// @Router       /api/database/export [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	env, err := h.uc.Export(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Disposition", `attachment; filename="mumi-pos-backup.json"`)
	return c.JSON(env)
}

// Import godoc
// @Summary      Restaurar la base desde un sobre JSON (solo admin)
// @Tags         database
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BackupEnvelope  true  "Sobre exportado previamente"
// @Success      200   {object}  dto.ImportResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/database/import [post]
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	var env dto.BackupEnvelope
	if err := c.BodyParser(&env); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "sobre inválido"})
	}
	result, err := h.uc.Import(c.Context(), &env)
	if err != nil {
		return respondError(c, err)
	}
	_ = h.reports.InvalidateCache(c.Context())
	return c.JSON(result)
}
