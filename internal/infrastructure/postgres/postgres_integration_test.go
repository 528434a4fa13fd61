package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
	"github.com/jhoicas/lotes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/lotes-api/pkg/config"
)

// newTestPool levanta un PostgreSQL efímero y aplica las migraciones embebidas.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("integración con PostgreSQL omitida en modo -short")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("lotes_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(pool, zerolog.Nop()))
	// segunda ejecución sin cambios
	require.NoError(t, postgres.Migrate(pool, zerolog.Nop()))
	return pool
}

type seed struct {
	user    *entity.User
	stock   *entity.Stock
	product *entity.Product
}

func seedOwner(t *testing.T, pool *pgxpool.Pool) seed {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	u := &entity.User{ID: uuid.NewString(), Name: "Ana", Email: "ana@example.com", PasswordHash: "x",
		Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewUserRepository(pool).Create(ctx, u))

	s := &entity.Stock{ID: uuid.NewString(), UserID: u.ID, Name: "Depósito", Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewStockRepository(pool).Create(ctx, s))

	p := &entity.Product{ID: uuid.NewString(), StockID: s.ID, Name: "Leite", Brand: "Itambé", Active: true,
		CreatedAt: now, UpdatedAt: now}
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, p))
	return seed{user: u, stock: s, product: p}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPostgres_UserEmailUnique(t *testing.T) {
	pool := newTestPool(t)
	sd := seedOwner(t, pool)
	ctx := context.Background()
	repo := postgres.NewUserRepository(pool)

	dup := &entity.User{ID: uuid.NewString(), Name: "Otra", Email: "ANA@example.com", PasswordHash: "x",
		Status: entity.UserStatusActive, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrEmailAlreadyExists)

	got, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sd.user.ID, got.ID)

	missing, err := repo.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostgres_UserUpdate(t *testing.T) {
	pool := newTestPool(t)
	sd := seedOwner(t, pool)
	ctx := context.Background()
	repo := postgres.NewUserRepository(pool)

	u := *sd.user
	u.Name = "Ana Maria"
	u.Phone = "+55 11 99999-0000"
	u.Status = entity.UserStatusInactive
	u.UpdatedAt = time.Now()
	require.NoError(t, repo.Update(ctx, &u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ana Maria", got.Name)
	assert.Equal(t, "+55 11 99999-0000", got.Phone)
	assert.Equal(t, entity.UserStatusInactive, got.Status)

	u.ID = uuid.NewString()
	assert.ErrorIs(t, repo.Update(ctx, &u), domain.ErrUserNotFound)
}

func TestPostgres_WithdrawalFEFO(t *testing.T) {
	pool := newTestPool(t)
	sd := seedOwner(t, pool)
	ctx := context.Background()
	log := zerolog.Nop()

	tx := postgres.NewTxRunner(pool, log)
	stocks := postgres.NewStockRepository(pool)
	products := postgres.NewProductRepository(pool)
	lots := postgres.NewLotRepository(pool)

	lotUC := inventory.NewLotUseCase(tx, lots, stocks, products, log)
	cost := decimal.RequireFromString("1.5")
	l2, in2, err := lotUC.CreateLot(ctx, inventory.CreateLotInput{
		UserID: sd.user.ID, StockID: sd.stock.ID, ProductID: sd.product.ID,
		BatchCode: "B-2", ExpiryDate: date(2030, 3, 1), Quantity: 40, UnitCost: &cost,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeEntrada, in2.Type)
	l1, _, err := lotUC.CreateLot(ctx, inventory.CreateLotInput{
		UserID: sd.user.ID, StockID: sd.stock.ID, ProductID: sd.product.ID,
		BatchCode: "B-1", ExpiryDate: date(2030, 1, 1), Quantity: 30,
	})
	require.NoError(t, err)

	listed, err := lots.ListByProduct(ctx, sd.product.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, l1.ID, listed[0].ID, "orden FEFO")
	assert.True(t, listed[1].UnitCost.Equal(cost))

	wUC := inventory.NewWithdrawalUseCase(tx, stocks, products, log)
	mov, err := wUC.RegisterWithdrawal(ctx, inventory.WithdrawalInput{
		UserID: sd.user.ID, StockID: sd.stock.ID, ProductID: sd.product.ID, Quantity: 50,
	})
	require.NoError(t, err)
	require.Len(t, mov.Lines, 2)
	assert.Equal(t, l1.ID, mov.Lines[0].LotID)
	assert.Equal(t, 30, mov.Lines[0].Quantity)
	assert.Equal(t, l2.ID, mov.Lines[1].LotID)
	assert.Equal(t, 20, mov.Lines[1].Quantity)

	_, err = wUC.RegisterWithdrawal(ctx, inventory.WithdrawalInput{
		UserID: sd.user.ID, StockID: sd.stock.ID, ProductID: sd.product.ID, Quantity: 21,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	total, err := inventory.NewQuantityAggregator(lots).RefreshTotal(ctx, sd.product)
	require.NoError(t, err)
	assert.Equal(t, 20, total)

	movs, err := postgres.NewMovementRepository(pool).List(ctx, repository.MovementFilter{
		StockID: sd.stock.ID, ProductID: sd.product.ID,
	})
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, entity.MovementTypeSaida, movs[2].Type)
	assert.Equal(t, sd.user.ID, movs[2].CreatedBy)
}

func TestPostgres_ListExpiringOn(t *testing.T) {
	pool := newTestPool(t)
	sd := seedOwner(t, pool)
	ctx := context.Background()
	lots := postgres.NewLotRepository(pool)

	mk := func(expiry time.Time, qty int) *entity.Lot {
		l := &entity.Lot{ID: uuid.NewString(), ProductID: sd.product.ID, StockID: sd.stock.ID, BatchCode: "X",
			ExpiryDate: expiry, InitialQuantity: 10, Quantity: qty, CreatedAt: time.Now()}
		require.NoError(t, lots.Create(ctx, l))
		return l
	}
	target := date(2031, 5, 10)
	hit := mk(target, 4)
	mk(target.AddDate(0, 0, 1), 4)

	got, err := lots.ListExpiringOn(ctx, target)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, hit.ID, got[0].ID)
	assert.Equal(t, "Leite", got[0].ProductName)
	assert.Equal(t, "Depósito", got[0].StockName)
	assert.Equal(t, "ana@example.com", got[0].OwnerEmail)
	assert.True(t, got[0].ExpiryDate.Equal(target))
}

func TestPostgres_UpdateQuantitiesRejectsNegative(t *testing.T) {
	pool := newTestPool(t)
	sd := seedOwner(t, pool)
	ctx := context.Background()
	lots := postgres.NewLotRepository(pool)

	l := &entity.Lot{ID: uuid.NewString(), ProductID: sd.product.ID, StockID: sd.stock.ID,
		ExpiryDate: date(2031, 1, 1), InitialQuantity: 5, Quantity: 5, CreatedAt: time.Now()}
	require.NoError(t, lots.Create(ctx, l))

	l.Quantity = -1
	assert.Error(t, lots.UpdateQuantities(ctx, []*entity.Lot{l}))

	fresh, err := lots.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, fresh.Quantity)
}
