package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrConflict       = errors.New("conflicto con el estado actual")
	ErrHasDependents  = errors.New("el recurso tiene registros asociados")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrUpstream       = errors.New("servicio externo no disponible")
	ErrNoContactMatch = errors.New("no se pudo identificar un contacto")
	ErrNotConfigured  = errors.New("servicio no configurado")
)
