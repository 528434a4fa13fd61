package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	dominv "github.com/jhoicas/lotes-api/internal/domain/inventory"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// QuantityAggregator recalcula el total vivo de un producto a partir de sus lotes.
// El total nunca se persiste: se deriva siempre de los lotes.
type QuantityAggregator struct {
	lotRepo repository.LotRepository
}

// NewQuantityAggregator construye el agregador.
func NewQuantityAggregator(lotRepo repository.LotRepository) *QuantityAggregator {
	return &QuantityAggregator{lotRepo: lotRepo}
}

// RefreshTotal lee los lotes del producto, suma los que tienen saldo, deja el valor en
// product.TotalQuantity y lo devuelve. No modifica lotes.
func (a *QuantityAggregator) RefreshTotal(ctx context.Context, product *entity.Product) (int, error) {
	lots, err := a.lotRepo.ListByProduct(ctx, product.ID)
	if err != nil {
		return 0, fmt.Errorf("listar lotes del producto %s: %w", product.ID, err)
	}
	return Aggregate(product, lots), nil
}

// RefreshAll aplica RefreshTotal a cada producto.
func (a *QuantityAggregator) RefreshAll(ctx context.Context, products []*entity.Product) error {
	for _, p := range products {
		if _, err := a.RefreshTotal(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Aggregate escribe en product.TotalQuantity la suma de lots ya cargados.
func Aggregate(product *entity.Product, lots []*entity.Lot) int {
	product.TotalQuantity = dominv.TotalQuantity(lots)
	return product.TotalQuantity
}
