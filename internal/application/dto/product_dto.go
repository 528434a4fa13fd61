package dto

import "time"

// CreateProductRequest entrada para crear un producto dentro de un stock.
type CreateProductRequest struct {
	StockID     string `json:"stock_id" validate:"required"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Brand       string `json:"brand" validate:"omitempty,max=200"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// UpdateProductRequest entrada para actualizar un producto. La cantidad no se edita: sale de los lotes.
type UpdateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Brand       *string `json:"brand" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// ProductResponse salida de un producto con su total vivo.
type ProductResponse struct {
	ID            string    `json:"id"`
	StockID       string    `json:"stock_id"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	Description   string    `json:"description"`
	Active        bool      `json:"active"`
	TotalQuantity int       `json:"total_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
