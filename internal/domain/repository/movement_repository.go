package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// MovementFilter filtros del historial de movimientos de un stock.
// ProductID, From y To son opcionales; To es exclusivo.
type MovementFilter struct {
	StockID   string
	ProductID string
	From      *time.Time
	To        *time.Time
}

// MovementRepository define el puerto de persistencia para movimientos (solo inserción y consulta).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
}
