package entity

import "time"

// MovementType tipo de movimiento de stock.
type MovementType string

// Tipos de movimiento.
const (
	MovementTypeEntrada MovementType = "ENTRADA" // alta de un lote
	MovementTypeSaida   MovementType = "SAIDA"   // retiro por FEFO
)

// Valid indica si el tipo es conocido.
func (t MovementType) Valid() bool {
	return t == MovementTypeEntrada || t == MovementTypeSaida
}

// Movement registro inmutable de un cambio de cantidad en un stock.
type Movement struct {
	ID        string
	StockID   string
	Type      MovementType
	Timestamp time.Time
	CreatedBy string
	Lines     []MovementLine
}

// MovementLine cantidad tomada (o ingresada) de un lote dentro de un movimiento.
type MovementLine struct {
	LotID     string
	ProductID string
	Quantity  int
}

// TotalQuantity suma las cantidades de las líneas.
func (m *Movement) TotalQuantity() int {
	total := 0
	for _, l := range m.Lines {
		total += l.Quantity
	}
	return total
}
