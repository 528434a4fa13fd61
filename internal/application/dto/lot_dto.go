package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLotRequest body para POST /api/lots (alta de lote = movimiento ENTRADA).
// ExpiryDate en formato YYYY-MM-DD.
type CreateLotRequest struct {
	StockID    string           `json:"stock_id" validate:"required"`
	ProductID  string           `json:"product_id" validate:"required"`
	BatchCode  string           `json:"batch_code" validate:"omitempty,max=100"`
	ExpiryDate string           `json:"expiry_date" validate:"required,datetime=2006-01-02"`
	Quantity   int              `json:"quantity"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
}

// LotResponse salida de un lote.
type LotResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	StockID         string          `json:"stock_id"`
	BatchCode       string          `json:"batch_code"`
	ExpiryDate      string          `json:"expiry_date"`
	InitialQuantity int             `json:"initial_quantity"`
	Quantity        int             `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CreateLotResponse lote creado junto con su movimiento de entrada.
type CreateLotResponse struct {
	Lot      LotResponse      `json:"lot"`
	Movement MovementResponse `json:"movement"`
}
