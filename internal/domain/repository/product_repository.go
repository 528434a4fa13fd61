package repository

import (
	"context"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// TotalQuantity nunca se lee ni se escribe aquí: lo calcula el agregador.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListByStock(ctx context.Context, stockID string) ([]*entity.Product, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Product, error)
}
