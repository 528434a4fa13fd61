package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/access"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// StockUseCase casos de uso CRUD para stocks. Nunca se borran: se desactivan.
type StockUseCase struct {
	repo repository.StockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StockRepository) *StockUseCase {
	return &StockUseCase{repo: repo}
}

// Create crea un nuevo stock activo del usuario.
func (uc *StockUseCase) Create(ctx context.Context, userID string, in dto.CreateStockRequest) (*dto.StockResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	stock := &entity.Stock{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, stock); err != nil {
		return nil, err
	}
	return toStockResponse(stock), nil
}

// GetByID obtiene un stock del usuario (incluso desactivado).
func (uc *StockUseCase) GetByID(ctx context.Context, userID, id string) (*dto.StockResponse, error) {
	stock, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toStockResponse(stock), nil
}

// List lista los stocks del usuario.
func (uc *StockUseCase) List(ctx context.Context, userID string) ([]dto.StockResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return items, nil
}

// Deactivate desactiva el stock. Desactivar dos veces devuelve ErrInactive.
func (uc *StockUseCase) Deactivate(ctx context.Context, userID, id string) (*dto.StockResponse, error) {
	stock, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := access.StockActive(stock); err != nil {
		return nil, err
	}
	stock.Active = false
	stock.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, stock); err != nil {
		return nil, err
	}
	return toStockResponse(stock), nil
}

func (uc *StockUseCase) owned(ctx context.Context, userID, id string) (*entity.Stock, error) {
	stock, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.StockOwnedBy(stock, userID); err != nil {
		return nil, err
	}
	return stock, nil
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Name:      s.Name,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
