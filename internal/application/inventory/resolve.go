package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/access"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// resolver carga stock y producto y aplica los predicados de acceso en el orden de los flujos:
// stock (existe, activo, del usuario), producto (existe, activo) y relación producto-stock.
type resolver struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
}

func (r resolver) stock(ctx context.Context, userID, stockID string) (*entity.Stock, error) {
	stock, err := r.stockRepo.GetByID(ctx, stockID)
	if err != nil {
		return nil, fmt.Errorf("obtener stock: %w", err)
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.UsableStock(stock, userID); err != nil {
		return nil, err
	}
	return stock, nil
}

func (r resolver) stockAndProduct(ctx context.Context, userID, stockID, productID string) (*entity.Stock, *entity.Product, error) {
	stock, err := r.stock(ctx, userID, stockID)
	if err != nil {
		return nil, nil, err
	}
	product, err := r.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, fmt.Errorf("obtener producto: %w", err)
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	if err := access.ProductActive(product); err != nil {
		return nil, nil, err
	}
	if err := access.ProductInStock(product, stock); err != nil {
		return nil, nil, err
	}
	return stock, product, nil
}

// ownedProduct carga un producto para lectura: solo exige que su stock sea del usuario.
// Los inactivos se pueden consultar.
func (r resolver) ownedProduct(ctx context.Context, userID, productID string) (*entity.Product, error) {
	product, err := r.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := r.stockRepo.GetByID(ctx, product.StockID)
	if err != nil {
		return nil, fmt.Errorf("obtener stock: %w", err)
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.StockOwnedBy(stock, userID); err != nil {
		return nil, err
	}
	return product, nil
}

// ownedStock carga un stock para lectura: solo exige que sea del usuario.
func (r resolver) ownedStock(ctx context.Context, userID, stockID string) (*entity.Stock, error) {
	stock, err := r.stockRepo.GetByID(ctx, stockID)
	if err != nil {
		return nil, fmt.Errorf("obtener stock: %w", err)
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.StockOwnedBy(stock, userID); err != nil {
		return nil, err
	}
	return stock, nil
}
