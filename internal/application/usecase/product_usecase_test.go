package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lotes-api/internal/application/dto"
	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/application/usecase"
	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/infrastructure/memory"
)

func setup(t *testing.T) (*memory.Store, *usecase.StockUseCase, *usecase.ProductUseCase, string) {
	t.Helper()
	s := memory.NewStore()
	stocks := usecase.NewStockUseCase(s.Stocks())
	products := usecase.NewProductUseCase(s.Products(), s.Stocks(), inventory.NewQuantityAggregator(s.Lots()))
	st, err := stocks.Create(context.Background(), "u1", dto.CreateStockRequest{Name: "Depósito"})
	require.NoError(t, err)
	return s, stocks, products, st.ID
}

func TestStockUseCase_CicloDeVida(t *testing.T) {
	ctx := context.Background()
	_, stocks, _, stockID := setup(t)

	got, err := stocks.GetByID(ctx, "u1", stockID)
	require.NoError(t, err)
	assert.True(t, got.Active)

	_, err = stocks.GetByID(ctx, "u2", stockID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := stocks.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	off, err := stocks.Deactivate(ctx, "u1", stockID)
	require.NoError(t, err)
	assert.False(t, off.Active)

	_, err = stocks.Deactivate(ctx, "u1", stockID)
	assert.ErrorIs(t, err, domain.ErrInactive)

	_, err = stocks.Create(ctx, "u1", dto.CreateStockRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_TotalVivo(t *testing.T) {
	ctx := context.Background()
	s, _, products, stockID := setup(t)

	p, err := products.Create(ctx, "u1", dto.CreateProductRequest{StockID: stockID, Name: "Leite", Brand: "Itambé"})
	require.NoError(t, err)
	assert.Equal(t, 0, p.TotalQuantity)

	exp := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Lots().Create(ctx, &entity.Lot{ID: "L1", ProductID: p.ID, StockID: stockID, ExpiryDate: exp, InitialQuantity: 30, Quantity: 30}))
	require.NoError(t, s.Lots().Create(ctx, &entity.Lot{ID: "L2", ProductID: p.ID, StockID: stockID, ExpiryDate: exp, InitialQuantity: 10, Quantity: 0}))

	got, err := products.GetByID(ctx, "u1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, got.TotalQuantity)

	list, err := products.List(ctx, "u1", stockID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 30, list[0].TotalQuantity)
}

func TestProductUseCase_UpdateYDeactivate(t *testing.T) {
	ctx := context.Background()
	_, _, products, stockID := setup(t)
	p, err := products.Create(ctx, "u1", dto.CreateProductRequest{StockID: stockID, Name: "Leite"})
	require.NoError(t, err)

	name := "Leite integral"
	upd, err := products.Update(ctx, "u1", p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Leite integral", upd.Name)

	_, err = products.Update(ctx, "u2", p.ID, dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = products.Deactivate(ctx, "u1", p.ID)
	require.NoError(t, err)

	list, err := products.List(ctx, "u1", "")
	require.NoError(t, err)
	assert.Empty(t, list, "los inactivos no se listan")

	got, err := products.GetByID(ctx, "u1", p.ID)
	require.NoError(t, err)
	assert.False(t, got.Active, "pero se pueden consultar")
}

func TestProductUseCase_CreateEnStockInactivoOAjeno(t *testing.T) {
	ctx := context.Background()
	_, stocks, products, stockID := setup(t)

	_, err := products.Create(ctx, "u2", dto.CreateProductRequest{StockID: stockID, Name: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = products.Create(ctx, "u1", dto.CreateProductRequest{StockID: "nope", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = stocks.Deactivate(ctx, "u1", stockID)
	require.NoError(t, err)
	_, err = products.Create(ctx, "u1", dto.CreateProductRequest{StockID: stockID, Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInactive)
}
