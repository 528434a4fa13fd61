package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
	"github.com/jhoicas/lotes-api/internal/infrastructure/memory"
)

func seedLot(t *testing.T, s *memory.Store, id, expiry string, qty int) {
	t.Helper()
	exp, err := time.Parse("2006-01-02", expiry)
	require.NoError(t, err)
	require.NoError(t, s.Lots().Create(context.Background(), &entity.Lot{
		ID: id, ProductID: "p1", StockID: "s1", ExpiryDate: exp, InitialQuantity: qty, Quantity: qty,
	}))
}

func TestTxRunner_RollbackDescartaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedLot(t, s, "L1", "2025-01-10", 30)
	boom := errors.New("boom")

	err := memory.NewTxRunner(s).Run(ctx, func(lots repository.LotRepository, movs repository.MovementRepository) error {
		list, err := lots.LockByProduct(ctx, "p1")
		require.NoError(t, err)
		list[0].Quantity = 0
		require.NoError(t, lots.UpdateQuantities(ctx, list))
		require.NoError(t, movs.Create(ctx, &entity.Movement{ID: "m1", StockID: "s1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	lot, err := s.Lots().GetByID(ctx, "L1")
	require.NoError(t, err)
	assert.Equal(t, 30, lot.Quantity)
	m, err := s.Movements().GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestTxRunner_CommitPublicaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedLot(t, s, "L1", "2025-01-10", 30)

	err := memory.NewTxRunner(s).Run(ctx, func(lots repository.LotRepository, movs repository.MovementRepository) error {
		list, _ := lots.LockByProduct(ctx, "p1")
		list[0].Quantity = 10
		if err := lots.UpdateQuantities(ctx, list); err != nil {
			return err
		}
		return movs.Create(ctx, &entity.Movement{ID: "m1", StockID: "s1", Timestamp: time.Now()})
	})
	require.NoError(t, err)

	lot, _ := s.Lots().GetByID(ctx, "L1")
	assert.Equal(t, 10, lot.Quantity)
	list, _ := s.Movements().List(ctx, repository.MovementFilter{StockID: "s1"})
	assert.Len(t, list, 1)
}

func TestTxRunner_Serializa(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedLot(t, s, "L1", "2025-01-10", 100)
	runner := memory.NewTxRunner(s)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = runner.Run(ctx, func(lots repository.LotRepository, _ repository.MovementRepository) error {
				list, _ := lots.LockByProduct(ctx, "p1")
				list[0].Quantity--
				return lots.UpdateQuantities(ctx, list)
			})
		}()
	}
	wg.Wait()

	lot, _ := s.Lots().GetByID(ctx, "L1")
	assert.Equal(t, 50, lot.Quantity)
}

func TestLots_NoAliasing(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedLot(t, s, "L1", "2025-01-10", 30)

	lot, _ := s.Lots().GetByID(ctx, "L1")
	lot.Quantity = 0

	again, _ := s.Lots().GetByID(ctx, "L1")
	assert.Equal(t, 30, again.Quantity)
}

func TestLots_UpdateQuantitiesRechazaNegativos(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedLot(t, s, "L1", "2025-01-10", 30)

	err := s.Lots().UpdateQuantities(ctx, []*entity.Lot{{ID: "L1", Quantity: -1}})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	err = s.Lots().UpdateQuantities(ctx, []*entity.Lot{{ID: "nope", Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLots_ListExpiringOnIncluyeDatosDelDueño(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u1", Email: "ana@example.com"}))
	require.NoError(t, s.Stocks().Create(ctx, &entity.Stock{ID: "s1", UserID: "u1", Name: "Depósito", Active: true}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", StockID: "s1", Name: "Leite", Brand: "Itambé", Active: true}))
	seedLot(t, s, "L2", "2025-01-08", 5)
	seedLot(t, s, "L1", "2025-01-08", 7)
	seedLot(t, s, "L3", "2025-01-09", 5)

	target := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	got, err := s.Lots().ListExpiringOn(ctx, target)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "L1", got[0].ID)
	assert.Equal(t, "Leite", got[0].ProductName)
	assert.Equal(t, "Depósito", got[0].StockName)
	assert.Equal(t, "ana@example.com", got[0].OwnerEmail)
}

func TestMovements_ListFiltra(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	day := func(d int) time.Time { return time.Date(2025, 1, d, 12, 0, 0, 0, time.UTC) }
	movs := s.Movements()
	require.NoError(t, movs.Create(ctx, &entity.Movement{ID: "a", StockID: "s1", Timestamp: day(2), Lines: []entity.MovementLine{{LotID: "L1", ProductID: "p1", Quantity: 1}}}))
	require.NoError(t, movs.Create(ctx, &entity.Movement{ID: "b", StockID: "s1", Timestamp: day(1), Lines: []entity.MovementLine{{LotID: "L2", ProductID: "p2", Quantity: 1}}}))
	require.NoError(t, movs.Create(ctx, &entity.Movement{ID: "c", StockID: "s2", Timestamp: day(1)}))

	all, _ := movs.List(ctx, repository.MovementFilter{StockID: "s1"})
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID, "ordenado por fecha")

	byProduct, _ := movs.List(ctx, repository.MovementFilter{StockID: "s1", ProductID: "p1"})
	require.Len(t, byProduct, 1)
	assert.Equal(t, "a", byProduct[0].ID)

	from := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	ranged, _ := movs.List(ctx, repository.MovementFilter{StockID: "s1", From: &from, To: &to})
	require.Len(t, ranged, 1)
	assert.Equal(t, "a", ranged[0].ID)

	assert.ErrorIs(t, movs.Create(ctx, &entity.Movement{ID: "a"}), domain.ErrDuplicate)
}

func TestUsers_EmailUnico(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u1", Email: "ana@example.com"}))
	err := s.Users().Create(ctx, &entity.User{ID: "u2", Email: "ANA@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	u, err := s.Users().GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}
