package inventory

import "github.com/jhoicas/lotes-api/internal/domain/entity"

// Allocation resultado de repartir un retiro entre lotes.
// Lines conserva el orden FEFO; Touched son los lotes modificados que hay que persistir.
type Allocation struct {
	Lines   []entity.MovementLine
	Touched []*entity.Lot
}

// Allocate reparte requested entre los lotes ya ordenados por FEFO (ver SortFEFO).
// Toma min(saldo, pendiente) de cada lote con saldo, decrementa el lote y genera la línea;
// se detiene al cubrir la cantidad o al quedarse sin lotes.
//
// No valida factibilidad: quien llama debe haber verificado requested <= TotalQuantity(lots).
// Con esa precondición las líneas suman exactamente requested.
func Allocate(orderedLots []*entity.Lot, requested int) Allocation {
	var out Allocation
	pending := requested
	for _, lot := range orderedLots {
		if pending <= 0 {
			break
		}
		if lot.Quantity <= 0 {
			continue
		}
		taken := min(lot.Quantity, pending)
		lot.Quantity -= taken
		pending -= taken
		out.Lines = append(out.Lines, entity.MovementLine{
			LotID:     lot.ID,
			ProductID: lot.ProductID,
			Quantity:  taken,
		})
		out.Touched = append(out.Touched, lot)
	}
	return out
}

// Allocated suma las cantidades de las líneas.
func (a Allocation) Allocated() int {
	total := 0
	for _, l := range a.Lines {
		total += l.Quantity
	}
	return total
}
