package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

type movementRepo struct {
	s  *Store
	tx *ledger
}

func (r *movementRepo) Create(_ context.Context, movement *entity.Movement) error {
	m := copyMovement(*movement)
	add := func(l *ledger) error {
		for _, existing := range l.movements {
			if existing.ID == m.ID {
				return domain.ErrDuplicate
			}
		}
		l.movements = append(l.movements, m)
		return nil
	}
	if r.tx != nil {
		return add(r.tx)
	}
	return r.s.write(add)
}

func (r *movementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	var out *entity.Movement
	r.s.read(r.tx, func(l *ledger) {
		for _, m := range l.movements {
			if m.ID == id {
				c := copyMovement(m)
				out = &c
				return
			}
		}
	})
	return out, nil
}

func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	out := make([]*entity.Movement, 0)
	r.s.read(r.tx, func(l *ledger) {
		for _, m := range l.movements {
			if matches(m, f) {
				c := copyMovement(m)
				out = append(out, &c)
			}
		}
	})
	slices.SortStableFunc(out, func(a, b *entity.Movement) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func matches(m entity.Movement, f repository.MovementFilter) bool {
	if f.StockID != "" && m.StockID != f.StockID {
		return false
	}
	if f.From != nil && m.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && !m.Timestamp.Before(*f.To) {
		return false
	}
	if f.ProductID != "" {
		return slices.ContainsFunc(m.Lines, func(l entity.MovementLine) bool { return l.ProductID == f.ProductID })
	}
	return true
}

func copyMovement(m entity.Movement) entity.Movement {
	m.Lines = slices.Clone(m.Lines)
	return m
}
