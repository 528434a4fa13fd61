package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	dominv "github.com/jhoicas/lotes-api/internal/domain/inventory"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
	"github.com/jhoicas/lotes-api/pkg/metrics"
)

// RegisterIntake arma el movimiento ENTRADA del lote (una línea por la cantidad inicial) y lo persiste
// con movRepo. Se invoca dentro de la misma transacción que inserta el lote.
func RegisterIntake(ctx context.Context, movRepo repository.MovementRepository, lot *entity.Lot, userID string, now time.Time) (*entity.Movement, error) {
	mov := dominv.NewIntakeMovement(lot, userID, now)
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("registrar entrada del lote %s: %w", lot.ID, err)
	}
	return mov, nil
}

// CreateLotInput entrada para el alta de un lote.
type CreateLotInput struct {
	UserID     string
	StockID    string
	ProductID  string
	BatchCode  string
	ExpiryDate time.Time
	Quantity   int
	UnitCost   *decimal.Decimal
}

// LotUseCase alta y consulta de lotes.
type LotUseCase struct {
	txRunner TxRunner
	lotRepo  repository.LotRepository
	resolver resolver
	now      func() time.Time
	log      zerolog.Logger
}

// NewLotUseCase construye el caso de uso.
func NewLotUseCase(
	txRunner TxRunner,
	lotRepo repository.LotRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	log zerolog.Logger,
) *LotUseCase {
	return &LotUseCase{
		txRunner: txRunner,
		lotRepo:  lotRepo,
		resolver: resolver{stockRepo: stockRepo, productRepo: productRepo},
		now:      time.Now,
		log:      log,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *LotUseCase) WithClock(now func() time.Time) *LotUseCase {
	uc.now = now
	return uc
}

// CreateLot inserta el lote y su movimiento ENTRADA en una sola transacción.
func (uc *LotUseCase) CreateLot(ctx context.Context, in CreateLotInput) (*entity.Lot, *entity.Movement, error) {
	if in.Quantity <= 0 {
		return nil, nil, domain.ErrInvalidQuantity
	}
	if in.ExpiryDate.IsZero() {
		return nil, nil, fmt.Errorf("%w: fecha de vencimiento requerida", domain.ErrInvalidInput)
	}
	unitCost := decimal.Zero
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, nil, fmt.Errorf("%w: el costo unitario no puede ser negativo", domain.ErrInvalidInput)
		}
		unitCost = *in.UnitCost
	}
	stock, product, err := uc.resolver.stockAndProduct(ctx, in.UserID, in.StockID, in.ProductID)
	if err != nil {
		return nil, nil, err
	}

	now := uc.now()
	lot := &entity.Lot{
		ID:              uuid.New().String(),
		ProductID:       product.ID,
		StockID:         stock.ID,
		BatchCode:       strings.TrimSpace(in.BatchCode),
		ExpiryDate:      dominv.DateOnly(in.ExpiryDate, time.UTC),
		InitialQuantity: in.Quantity,
		Quantity:        in.Quantity,
		UnitCost:        unitCost,
		CreatedAt:       now,
	}

	var mov *entity.Movement
	err = uc.txRunner.Run(ctx, func(lotRepo repository.LotRepository, movRepo repository.MovementRepository) error {
		if err := lotRepo.Create(ctx, lot); err != nil {
			return err
		}
		m, err := RegisterIntake(ctx, movRepo, lot, in.UserID, now)
		if err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	metrics.ObserveIntake()
	uc.log.Info().
		Str("lot_id", lot.ID).
		Str("product_id", lot.ProductID).
		Int("quantity", lot.InitialQuantity).
		Time("expiry_date", lot.ExpiryDate).
		Msg("lote registrado")
	return lot, mov, nil
}

// ListByProduct devuelve los lotes del producto en orden FEFO, incluidos los agotados.
func (uc *LotUseCase) ListByProduct(ctx context.Context, userID, productID string) ([]*entity.Lot, error) {
	if _, err := uc.resolver.ownedProduct(ctx, userID, productID); err != nil {
		return nil, err
	}
	lots, err := uc.lotRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	dominv.SortFEFO(lots)
	return lots, nil
}
