package inventory

import (
	"slices"
	"strings"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// SortFEFO ordena los lotes in place: primero el que vence antes (First-Expire-First-Out);
// a igual vencimiento, por ID para que el orden sea reproducible.
func SortFEFO(lots []*entity.Lot) {
	slices.SortStableFunc(lots, CompareFEFO)
}

// CompareFEFO compara dos lotes según el criterio FEFO.
func CompareFEFO(a, b *entity.Lot) int {
	if c := a.ExpiryDate.Compare(b.ExpiryDate); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
