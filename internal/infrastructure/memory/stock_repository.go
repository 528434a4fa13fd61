package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

type stockRepo struct{ s *Store }

func (r *stockRepo) Create(_ context.Context, stock *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.stocks[stock.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.stocks[stock.ID] = *stock
	return nil
}

func (r *stockRepo) GetByID(_ context.Context, id string) (*entity.Stock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.stocks[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r *stockRepo) Update(_ context.Context, stock *entity.Stock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.stocks[stock.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.stocks[stock.ID] = *stock
	return nil
}

func (r *stockRepo) ListByUser(_ context.Context, userID string) ([]*entity.Stock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Stock, 0)
	for _, st := range r.s.stocks {
		st := st
		if st.UserID == userID {
			out = append(out, &st)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Stock) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}
