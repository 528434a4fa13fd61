package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	p := *product
	p.TotalQuantity = 0
	r.s.products[p.ID] = p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) Update(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	p := *product
	p.TotalQuantity = 0
	r.s.products[p.ID] = p
	return nil
}

func (r *productRepo) ListByStock(_ context.Context, stockID string) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.filter(func(p entity.Product) bool { return p.StockID == stockID }), nil
}

func (r *productRepo) ListByUser(_ context.Context, userID string) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.filter(func(p entity.Product) bool {
		st, ok := r.s.stocks[p.StockID]
		return ok && st.UserID == userID
	}), nil
}

// filter asume r.s.mu tomado.
func (r *productRepo) filter(keep func(entity.Product) bool) []*entity.Product {
	out := make([]*entity.Product, 0)
	for _, p := range r.s.products {
		p := p
		if keep(p) {
			out = append(out, &p)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Product) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}
