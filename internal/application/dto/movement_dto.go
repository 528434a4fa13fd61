package dto

import "time"

// WithdrawalRequest body para POST /api/movements/withdrawals.
type WithdrawalRequest struct {
	StockID   string `json:"stock_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// MovementLineResponse lote y cantidad de una línea de movimiento.
type MovementLineResponse struct {
	LotID     string `json:"lot_id"`
	ProductID string `json:"product_id,omitempty"`
	Quantity  int    `json:"quantity"`
}

// MovementResponse salida de un movimiento (retiro o entrada).
type MovementResponse struct {
	MovementID string                 `json:"movement_id"`
	StockID    string                 `json:"stock_id,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
	Type       string                 `json:"type"`
	CreatedBy  string                 `json:"created_by,omitempty"`
	Lines      []MovementLineResponse `json:"lines"`
}

// MovementHistoryQuery filtros de GET /api/movements; from/to en YYYY-MM-DD, ambos inclusive.
type MovementHistoryQuery struct {
	StockID   string `query:"stock_id" validate:"required"`
	ProductID string `query:"product_id"`
	From      string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// MovementListResponse historial de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}
