package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// paramID lee un parámetro de ruta numérico; devuelve 0 si falta o no es número.
func paramID(c *fiber.Ctx, name string) int64 {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// queryDate lee una fecha YYYY-MM-DD de la query; nil si falta o es inválida.
func queryDate(c *fiber.Ctx, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

// queryInt64 lee un entero de la query; nil si falta o es inválido.
func queryInt64(c *fiber.Ctx, name string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
