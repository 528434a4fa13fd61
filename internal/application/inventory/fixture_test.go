package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: usuario u1 dueño del stock s1 con el producto p1
// ──────────────────────────────────────────────────────────────────────────────

const (
	ownerID   = "u1"
	stockID   = "s1"
	productID = "p1"
)

var fixedNow = time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	ctx        context.Context
	store      *memory.Store
	withdrawal *inventory.WithdrawalUseCase
	lots       *inventory.LotUseCase
	history    *inventory.HistoryUseCase
	aggregator *inventory.QuantityAggregator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: ownerID, Email: "ana@example.com", Status: entity.UserStatusActive}))
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u2", Email: "bea@example.com", Status: entity.UserStatusActive}))
	require.NoError(t, s.Stocks().Create(ctx, &entity.Stock{ID: stockID, UserID: ownerID, Name: "Depósito", Active: true}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: productID, StockID: stockID, Name: "Leite", Brand: "Itambé", Active: true}))

	tx := memory.NewTxRunner(s)
	log := zerolog.Nop()
	clock := func() time.Time { return fixedNow }
	return &fixture{
		ctx:        ctx,
		store:      s,
		withdrawal: inventory.NewWithdrawalUseCase(tx, s.Stocks(), s.Products(), log).WithClock(clock),
		lots:       inventory.NewLotUseCase(tx, s.Lots(), s.Stocks(), s.Products(), log).WithClock(clock),
		history:    inventory.NewHistoryUseCase(s.Movements(), s.Stocks(), s.Products()),
		aggregator: inventory.NewQuantityAggregator(s.Lots()),
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

// seedLot inserta un lote con ID conocido directamente en el store.
func (f *fixture) seedLot(t *testing.T, id, expiry string, qty int) {
	t.Helper()
	require.NoError(t, f.store.Lots().Create(f.ctx, &entity.Lot{
		ID:              id,
		ProductID:       productID,
		StockID:         stockID,
		ExpiryDate:      mustDate(t, expiry),
		InitialQuantity: qty,
		Quantity:        qty,
	}))
}

func (f *fixture) lotQty(t *testing.T, id string) int {
	t.Helper()
	lot, err := f.store.Lots().GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, lot)
	return lot.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Mocks
// ──────────────────────────────────────────────────────────────────────────────

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyExpiringLots(ctx context.Context, lots []*entity.ExpiringLot, days int) error {
	args := m.Called(ctx, lots, days)
	return args.Error(0)
}

type mockReportGenerator struct {
	mock.Mock
}

func (m *mockReportGenerator) GenerateMovementReport(ctx context.Context, report *inventory.MovementReport) ([]byte, error) {
	args := m.Called(ctx, report)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}
