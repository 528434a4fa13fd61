package entity

import "time"

// Product representa un producto perecedero dentro de un stock.
// TotalQuantity es transitorio: se recalcula desde los lotes vivos y nunca se persiste.
type Product struct {
	ID            string
	StockID       string
	Name          string
	Brand         string
	Description   string
	Active        bool
	TotalQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
