package dto

import "time"

// CreateStockRequest entrada para crear un stock.
type CreateStockRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// StockResponse salida de un stock.
type StockResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
