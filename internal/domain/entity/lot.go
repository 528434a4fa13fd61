package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot representa un lote físico de un producto con fecha de vencimiento.
// Quantity es el saldo restante (>= 0); un lote agotado se conserva para auditoría.
type Lot struct {
	ID              string
	ProductID       string
	StockID         string
	BatchCode       string    // lote del fabricante
	ExpiryDate      time.Time // solo fecha (00:00 UTC)
	InitialQuantity int
	Quantity        int
	UnitCost        decimal.Decimal // opcional, 0 si no se informó
	CreatedAt       time.Time
}

// Exhausted indica si el lote ya no tiene saldo.
func (l *Lot) Exhausted() bool { return l.Quantity <= 0 }

// ExpiringLot lote con los datos necesarios para avisos de vencimiento.
type ExpiringLot struct {
	Lot
	ProductName  string
	ProductBrand string
	StockName    string
	OwnerEmail   string
}
