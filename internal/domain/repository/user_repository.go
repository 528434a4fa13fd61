package repository

import (
	"context"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Update guarda nombre, teléfono, hash y estado. El email no cambia.
	Update(ctx context.Context, user *entity.User) error
}
