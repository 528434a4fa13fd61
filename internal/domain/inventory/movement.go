package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// NewWithdrawalMovement arma el movimiento SAIDA con las líneas de una asignación.
func NewWithdrawalMovement(stockID, userID string, alloc Allocation, now time.Time) *entity.Movement {
	lines := make([]entity.MovementLine, len(alloc.Lines))
	copy(lines, alloc.Lines)
	return &entity.Movement{
		ID:        uuid.New().String(),
		StockID:   stockID,
		Type:      entity.MovementTypeSaida,
		Timestamp: now,
		CreatedBy: userID,
		Lines:     lines,
	}
}

// NewIntakeMovement arma el movimiento ENTRADA: una sola línea por la cantidad inicial del lote.
func NewIntakeMovement(lot *entity.Lot, userID string, now time.Time) *entity.Movement {
	return &entity.Movement{
		ID:        uuid.New().String(),
		StockID:   lot.StockID,
		Type:      entity.MovementTypeEntrada,
		Timestamp: now,
		CreatedBy: userID,
		Lines: []entity.MovementLine{{
			LotID:     lot.ID,
			ProductID: lot.ProductID,
			Quantity:  lot.InitialQuantity,
		}},
	}
}
