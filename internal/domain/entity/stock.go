package entity

import "time"

// Stock representa un almacén de un usuario; agrupa productos, lotes y movimientos.
// Desactivar un stock es lógico (Active=false); nunca se borra.
type Stock struct {
	ID        string
	UserID    string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
