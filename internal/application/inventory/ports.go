package inventory

import (
	"context"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad del retiro y del alta de lotes: si fn falla no queda ningún cambio.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// ExpiryNotifier entrega los avisos de lotes por vencer (Telegram, email...).
type ExpiryNotifier interface {
	NotifyExpiringLots(ctx context.Context, lots []*entity.ExpiringLot, days int) error
}

// ReportGenerator genera el PDF del historial de movimientos.
type ReportGenerator interface {
	GenerateMovementReport(ctx context.Context, report *MovementReport) ([]byte, error)
}
