package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	dominv "github.com/jhoicas/lotes-api/internal/domain/inventory"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
	"github.com/jhoicas/lotes-api/pkg/metrics"
)

// WithdrawalInput entrada del retiro FEFO.
type WithdrawalInput struct {
	UserID    string
	StockID   string
	ProductID string
	Quantity  int
}

// WithdrawalUseCase registra retiros (SAIDA) repartidos entre lotes por FEFO.
type WithdrawalUseCase struct {
	txRunner TxRunner
	resolver resolver
	now      func() time.Time
	log      zerolog.Logger
}

// NewWithdrawalUseCase construye el caso de uso.
func NewWithdrawalUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	log zerolog.Logger,
) *WithdrawalUseCase {
	return &WithdrawalUseCase{
		txRunner: txRunner,
		resolver: resolver{stockRepo: stockRepo, productRepo: productRepo},
		now:      time.Now,
		log:      log,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *WithdrawalUseCase) WithClock(now func() time.Time) *WithdrawalUseCase {
	uc.now = now
	return uc
}

// RegisterWithdrawal valida stock y producto, y dentro de una transacción bloquea los lotes del
// producto (SELECT FOR UPDATE), recalcula el total, rechaza si no alcanza, reparte por FEFO y
// persiste lotes y movimiento juntos.
//
// Retorna:
//   - domain.ErrInvalidQuantity  si quantity <= 0 o supera el total vivo (sin tocar ningún lote).
//   - domain.ErrNotFound         si el stock o el producto no existen.
//   - domain.ErrInactive         si alguno fue desactivado.
//   - domain.ErrForbidden        si el stock no es del usuario.
//   - domain.ErrUnrelated        si el producto no pertenece al stock.
func (uc *WithdrawalUseCase) RegisterWithdrawal(ctx context.Context, in WithdrawalInput) (mov *entity.Movement, err error) {
	defer func() { uc.observe(in, mov, err) }()

	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	stock, product, err := uc.resolver.stockAndProduct(ctx, in.UserID, in.StockID, in.ProductID)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.Run(ctx, func(lotRepo repository.LotRepository, movRepo repository.MovementRepository) error {
		lots, err := lotRepo.LockByProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		dominv.SortFEFO(lots)
		if in.Quantity > Aggregate(product, lots) {
			return domain.ErrInvalidQuantity
		}

		alloc := dominv.Allocate(lots, in.Quantity)
		if got := alloc.Allocated(); got != in.Quantity {
			return fmt.Errorf("reparto FEFO incompleto: %d de %d", got, in.Quantity)
		}
		if err := lotRepo.UpdateQuantities(ctx, alloc.Touched); err != nil {
			return err
		}
		m := dominv.NewWithdrawalMovement(stock.ID, in.UserID, alloc, uc.now())
		if err := movRepo.Create(ctx, m); err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

func (uc *WithdrawalUseCase) observe(in WithdrawalInput, mov *entity.Movement, err error) {
	switch {
	case err == nil:
		metrics.ObserveWithdrawal(metrics.ResultOK, in.Quantity, len(mov.Lines))
		uc.log.Info().
			Str("movement_id", mov.ID).
			Str("stock_id", in.StockID).
			Str("product_id", in.ProductID).
			Int("quantity", in.Quantity).
			Int("lots", len(mov.Lines)).
			Msg("retiro registrado")
	case isDomainError(err):
		metrics.ObserveWithdrawal(metrics.ResultRejected, 0, 0)
		uc.log.Debug().Err(err).
			Str("stock_id", in.StockID).
			Str("product_id", in.ProductID).
			Int("quantity", in.Quantity).
			Msg("retiro rechazado")
	default:
		metrics.ObserveWithdrawal(metrics.ResultError, 0, 0)
		uc.log.Error().Err(err).
			Str("stock_id", in.StockID).
			Str("product_id", in.ProductID).
			Msg("retiro fallido")
	}
}

func isDomainError(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidQuantity, domain.ErrNotFound, domain.ErrInactive,
		domain.ErrForbidden, domain.ErrUnrelated, domain.ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
