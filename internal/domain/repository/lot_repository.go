package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// LotRepository define el puerto de persistencia para lotes.
// Los listados por producto se devuelven en orden FEFO (vencimiento asc, id asc).
type LotRepository interface {
	Create(ctx context.Context, lot *entity.Lot) error
	GetByID(ctx context.Context, id string) (*entity.Lot, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Lot, error)
	// LockByProduct igual que ListByProduct pero bloquea las filas (SELECT FOR UPDATE);
	// solo tiene sentido dentro de una transacción.
	LockByProduct(ctx context.Context, productID string) ([]*entity.Lot, error)
	// ListExpiringOn lotes cuyo vencimiento es exactamente date, con datos de producto y dueño.
	ListExpiringOn(ctx context.Context, date time.Time) ([]*entity.ExpiringLot, error)
	UpdateQuantities(ctx context.Context, lots []*entity.Lot) error
}
