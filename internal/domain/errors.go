package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrHasSales: el lote o envío tiene ventas registradas y no puede eliminarse.
	ErrHasSales = errors.New("tiene ventas registradas")
	// ErrBottlesExhausted: no quedan botellas físicas por marcar como terminadas.
	ErrBottlesExhausted = errors.New("no quedan botellas por terminar")
)
