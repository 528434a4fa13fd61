package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// TotalQuantity suma el saldo de los lotes no agotados. Es la única fuente del total de un producto.
func TotalQuantity(lots []*entity.Lot) int {
	total := 0
	for _, l := range lots {
		if l.Quantity > 0 {
			total += l.Quantity
		}
	}
	return total
}

// Valuation valor del saldo vivo: Σ saldo * costo unitario (lotes sin costo valen 0).
func Valuation(lots []*entity.Lot) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lots {
		if l.Quantity <= 0 {
			continue
		}
		sum = sum.Add(l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}
