package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mumi-pos-api/internal/application/dto"
	"github.com/jhoicas/mumi-pos-api/internal/application/perfumes"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
)

// PerfumeHandler maneja el catálogo de perfumes.
type PerfumeHandler struct {
	uc *perfumes.UseCase
}

// NewPerfumeHandler construye el handler.
func NewPerfumeHandler(uc *perfumes.UseCase) *PerfumeHandler {
	return &PerfumeHandler{uc: uc}
}

func toPerfumeResponse(p *entity.Perfume) dto.PerfumeResponse {
	return dto.PerfumeResponse{
		ID:                        p.ID,
		Name:                      p.Name,
		VolumeML:                  p.VolumeML,
		EstimatedDecantsPerBottle: p.EstimatedDecantsPerBottle,
		IsOutOfStock:              p.IsOutOfStock,
		CreatedAt:                 p.CreatedAt,
	}
}

// Create godoc
// @Summary      Crear perfume
// @Tags         perfumes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePerfumeRequest  true  "Datos del perfume"
// @Success      201   {object}  dto.PerfumeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/perfumes [post]
func (h *PerfumeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePerfumeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPerfumeResponse(p))
}

// List godoc
// @Summary      Listar perfumes
// @Tags         perfumes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PerfumeResponse
// @Router       /api/perfumes [get]
func (h *PerfumeHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PerfumeResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPerfumeResponse(p))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener perfume por ID
// @Tags         perfumes
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del perfume"
// @Success      200  {object}  dto.PerfumeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/perfumes/{id} [get]
func (h *PerfumeHandler) GetByID(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	p, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPerfumeResponse(p))
}

// Update godoc
// @Summary      Actualizar perfume
// @Tags         perfumes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del perfume"
// @Param        body  body  dto.UpdatePerfumeRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.PerfumeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/perfumes/{id} [put]
func (h *PerfumeHandler) Update(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdatePerfumeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPerfumeResponse(p))
}

// Delete godoc
// @Summary      Eliminar perfume (solo si no tiene lotes)
// @Tags         perfumes
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del perfume"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/perfumes/{id} [delete]
func (h *PerfumeHandler) Delete(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "perfume eliminado"})
}
