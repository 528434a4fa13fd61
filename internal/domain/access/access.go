// Package access reúne los predicados de autorización y estado que comparten los flujos de inventario.
// Cada predicado devuelve nil o un error de dominio.
package access

import (
	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// StockActive falla con ErrInactive si el stock fue desactivado.
func StockActive(s *entity.Stock) error {
	if !s.Active {
		return domain.ErrInactive
	}
	return nil
}

// ProductActive falla con ErrInactive si el producto fue desactivado.
func ProductActive(p *entity.Product) error {
	if !p.Active {
		return domain.ErrInactive
	}
	return nil
}

// StockOwnedBy falla con ErrForbidden si el stock no pertenece al usuario.
func StockOwnedBy(s *entity.Stock, userID string) error {
	if s.UserID != userID {
		return domain.ErrForbidden
	}
	return nil
}

// ProductInStock falla con ErrUnrelated si el producto no está registrado en el stock.
func ProductInStock(p *entity.Product, s *entity.Stock) error {
	if p.StockID != s.ID {
		return domain.ErrUnrelated
	}
	return nil
}

// UsableStock combina los chequeos de un stock sobre el que se va a operar: del usuario y activo.
// La pertenencia va primero para que un tercero no pueda distinguir un stock desactivado.
func UsableStock(s *entity.Stock, userID string) error {
	if err := StockOwnedBy(s, userID); err != nil {
		return err
	}
	return StockActive(s)
}
