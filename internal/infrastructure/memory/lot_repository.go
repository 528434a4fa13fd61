package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	dominv "github.com/jhoicas/lotes-api/internal/domain/inventory"
)

// lotRepo con tx == nil opera sobre el ledger publicado; dentro de TxRunner.Run sobre la copia.
type lotRepo struct {
	s  *Store
	tx *ledger
}

func (r *lotRepo) mutate(fn func(l *ledger) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.s.write(fn)
}

func (r *lotRepo) Create(_ context.Context, lot *entity.Lot) error {
	return r.mutate(func(l *ledger) error {
		if _, ok := l.lots[lot.ID]; ok {
			return domain.ErrDuplicate
		}
		if lot.Quantity < 0 {
			return domain.ErrInvalidQuantity
		}
		l.lots[lot.ID] = *lot
		return nil
	})
}

func (r *lotRepo) GetByID(_ context.Context, id string) (*entity.Lot, error) {
	var out *entity.Lot
	r.s.read(r.tx, func(l *ledger) {
		if lot, ok := l.lots[id]; ok {
			out = &lot
		}
	})
	return out, nil
}

func (r *lotRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Lot, error) {
	out := make([]*entity.Lot, 0)
	r.s.read(r.tx, func(l *ledger) {
		for _, lot := range l.lots {
			lot := lot
			if lot.ProductID == productID {
				out = append(out, &lot)
			}
		}
	})
	dominv.SortFEFO(out)
	return out, nil
}

// LockByProduct no necesita más bloqueo: Run ya serializa las transacciones.
func (r *lotRepo) LockByProduct(ctx context.Context, productID string) ([]*entity.Lot, error) {
	return r.ListByProduct(ctx, productID)
}

func (r *lotRepo) ListExpiringOn(_ context.Context, date time.Time) ([]*entity.ExpiringLot, error) {
	target := dominv.DateOnly(date, time.UTC)
	var matches []entity.Lot
	r.s.read(r.tx, func(l *ledger) {
		for _, lot := range l.lots {
			if lot.ExpiryDate.Equal(target) {
				matches = append(matches, lot)
			}
		}
	})

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.ExpiringLot, 0, len(matches))
	for _, lot := range matches {
		el := &entity.ExpiringLot{Lot: lot}
		if p, ok := r.s.products[lot.ProductID]; ok {
			el.ProductName = p.Name
			el.ProductBrand = p.Brand
		}
		if st, ok := r.s.stocks[lot.StockID]; ok {
			el.StockName = st.Name
			if u, ok := r.s.users[st.UserID]; ok {
				el.OwnerEmail = u.Email
			}
		}
		out = append(out, el)
	}
	slices.SortFunc(out, func(a, b *entity.ExpiringLot) int { return dominv.CompareFEFO(&a.Lot, &b.Lot) })
	return out, nil
}

func (r *lotRepo) UpdateQuantities(_ context.Context, lots []*entity.Lot) error {
	return r.mutate(func(l *ledger) error {
		for _, lot := range lots {
			if _, ok := l.lots[lot.ID]; !ok {
				return fmt.Errorf("lote %s: %w", lot.ID, domain.ErrNotFound)
			}
			if lot.Quantity < 0 {
				return fmt.Errorf("lote %s: %w", lot.ID, domain.ErrInvalidQuantity)
			}
		}
		for _, lot := range lots {
			stored := l.lots[lot.ID]
			stored.Quantity = lot.Quantity
			l.lots[lot.ID] = stored
		}
		return nil
	})
}
