package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInactive           = errors.New("el recurso fue desactivado")
	ErrUnrelated          = errors.New("el producto no pertenece al stock indicado")
	// ErrInvalidQuantity cantidad no positiva o mayor que el total vivo de los lotes.
	ErrInvalidQuantity = errors.New("cantidad inválida: se solicitó más de lo disponible o un valor no positivo")
)
