package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/access"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. La cantidad se maneja vía lotes y movimientos;
// las lecturas devuelven el total vivo recalculado por el agregador.
type ProductUseCase struct {
	repo       repository.ProductRepository
	stockRepo  repository.StockRepository
	aggregator *inventory.QuantityAggregator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	stockRepo repository.StockRepository,
	aggregator *inventory.QuantityAggregator,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, stockRepo: stockRepo, aggregator: aggregator}
}

// Create crea un producto en un stock activo del usuario.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	stock, err := uc.stockRepo.GetByID(ctx, in.StockID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.UsableStock(stock, userID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		StockID:     stock.ID,
		Name:        name,
		Brand:       strings.TrimSpace(in.Brand),
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del usuario con su total vivo.
func (uc *ProductUseCase) GetByID(ctx context.Context, userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if _, err := uc.aggregator.RefreshTotal(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre, marca o descripción. No permite modificar cantidades.
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := access.ProductActive(product); err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Brand != nil {
		product.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	if _, err := uc.aggregator.RefreshTotal(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Deactivate desactiva el producto. Sus lotes se conservan.
func (uc *ProductUseCase) Deactivate(ctx context.Context, userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := access.ProductActive(product); err != nil {
		return nil, err
	}
	product.Active = false
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista los productos activos del usuario; con stockID solo los de ese stock.
func (uc *ProductUseCase) List(ctx context.Context, userID, stockID string) ([]dto.ProductResponse, error) {
	var (
		list []*entity.Product
		err  error
	)
	if stockID != "" {
		stock, gErr := uc.stockRepo.GetByID(ctx, stockID)
		if gErr != nil {
			return nil, gErr
		}
		if stock == nil {
			return nil, domain.ErrNotFound
		}
		if err := access.StockOwnedBy(stock, userID); err != nil {
			return nil, err
		}
		list, err = uc.repo.ListByStock(ctx, stockID)
	} else {
		list, err = uc.repo.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	active := make([]*entity.Product, 0, len(list))
	for _, p := range list {
		if p.Active {
			active = append(active, p)
		}
	}
	if err := uc.aggregator.RefreshAll(ctx, active); err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(active))
	for _, p := range active {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

func (uc *ProductUseCase) owned(ctx context.Context, userID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.stockRepo.GetByID(ctx, product.StockID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.StockOwnedBy(stock, userID); err != nil {
		return nil, err
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		StockID:       p.StockID,
		Name:          p.Name,
		Brand:         p.Brand,
		Description:   p.Description,
		Active:        p.Active,
		TotalQuantity: p.TotalQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
