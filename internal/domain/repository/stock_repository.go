package repository

import (
	"context"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// StockRepository define el puerto de persistencia para Stock (DIP).
// GetByID devuelve (nil, nil) si no existe.
type StockRepository interface {
	Create(ctx context.Context, stock *entity.Stock) error
	GetByID(ctx context.Context, id string) (*entity.Stock, error)
	Update(ctx context.Context, stock *entity.Stock) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Stock, error)
}
