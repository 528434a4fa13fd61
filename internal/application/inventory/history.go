package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/access"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// HistoryFilter filtros del historial. From y To son fechas calendario, ambas inclusive.
type HistoryFilter struct {
	UserID    string
	StockID   string
	ProductID string
	From      *time.Time
	To        *time.Time
}

// HistoryUseCase consulta el historial de movimientos de un stock.
type HistoryUseCase struct {
	movRepo  repository.MovementRepository
	resolver resolver
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) *HistoryUseCase {
	return &HistoryUseCase{
		movRepo:  movRepo,
		resolver: resolver{stockRepo: stockRepo, productRepo: productRepo},
	}
}

// List devuelve los movimientos del stock ordenados por fecha; con ProductID solo los que tienen
// alguna línea de ese producto.
func (uc *HistoryUseCase) List(ctx context.Context, f HistoryFilter) ([]*entity.Movement, error) {
	repoFilter, err := uc.repoFilter(ctx, f)
	if err != nil {
		return nil, err
	}
	return uc.movRepo.List(ctx, repoFilter)
}

func (uc *HistoryUseCase) repoFilter(ctx context.Context, f HistoryFilter) (repository.MovementFilter, error) {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return repository.MovementFilter{}, fmt.Errorf("%w: la fecha inicial es posterior a la final", domain.ErrInvalidInput)
	}
	stock, err := uc.resolver.ownedStock(ctx, f.UserID, f.StockID)
	if err != nil {
		return repository.MovementFilter{}, err
	}
	if f.ProductID != "" {
		product, err := uc.resolver.ownedProduct(ctx, f.UserID, f.ProductID)
		if err != nil {
			return repository.MovementFilter{}, err
		}
		if err := access.ProductInStock(product, stock); err != nil {
			return repository.MovementFilter{}, err
		}
	}
	out := repository.MovementFilter{StockID: stock.ID, ProductID: f.ProductID}
	if f.From != nil {
		from := dayStart(*f.From)
		out.From = &from
	}
	if f.To != nil {
		// To inclusive -> límite exclusivo al día siguiente
		to := dayStart(*f.To).AddDate(0, 0, 1)
		out.To = &to
	}
	return out, nil
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
