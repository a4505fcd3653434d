package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidDateRange  = errors.New("rango de fechas inválido")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrRemoteUnavailable = errors.New("el API de la tienda no está disponible")
)
