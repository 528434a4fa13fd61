package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

const lotColumns = `l.id, l.product_id, l.stock_id, l.batch_code, l.expiry_date, l.initial_quantity, l.quantity, l.unit_cost, l.created_at`

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create inserta un lote.
func (r *LotRepo) Create(ctx context.Context, l *entity.Lot) error {
	query := `
		INSERT INTO lots (id, product_id, stock_id, batch_code, expiry_date, initial_quantity, quantity, unit_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.ProductID, l.StockID, l.BatchCode, l.ExpiryDate, l.InitialQuantity, l.Quantity, l.UnitCost, l.CreatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		case isCheckViolation(err):
			return domain.ErrInvalidQuantity
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(ctx context.Context, id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots l WHERE l.id = $1`
	var l entity.Lot
	if err := scanLot(r.q.QueryRow(ctx, query, id), &l); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

// ListByProduct lista los lotes del producto en orden FEFO.
func (r *LotRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots l WHERE l.product_id = $1 ORDER BY l.expiry_date, l.id`
	return r.list(ctx, query, productID)
}

// LockByProduct lista los lotes del producto en orden FEFO bloqueando las filas (SELECT FOR UPDATE).
// Dos retiros concurrentes del mismo producto quedan serializados.
func (r *LotRepo) LockByProduct(ctx context.Context, productID string) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots l WHERE l.product_id = $1 ORDER BY l.expiry_date, l.id FOR UPDATE`
	return r.list(ctx, query, productID)
}

// ListExpiringOn lotes que vencen exactamente en date, con producto, stock y email del dueño.
func (r *LotRepo) ListExpiringOn(ctx context.Context, date time.Time) ([]*entity.ExpiringLot, error) {
	query := `
		SELECT ` + lotColumns + `, p.name, p.brand, s.name, u.email
		FROM lots l
		JOIN products p ON p.id = l.product_id
		JOIN stocks s ON s.id = l.stock_id
		JOIN users u ON u.id = s.user_id
		WHERE l.expiry_date = $1::date
		ORDER BY l.expiry_date, l.id`
	rows, err := r.q.Query(ctx, query, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("list expiring lots: %w", err)
	}
	defer rows.Close()

	var list []*entity.ExpiringLot
	for rows.Next() {
		var el entity.ExpiringLot
		l := &el.Lot
		if err := rows.Scan(
			&l.ID, &l.ProductID, &l.StockID, &l.BatchCode, &l.ExpiryDate, &l.InitialQuantity, &l.Quantity, &l.UnitCost, &l.CreatedAt,
			&el.ProductName, &el.ProductBrand, &el.StockName, &el.OwnerEmail,
		); err != nil {
			return nil, fmt.Errorf("scan expiring lot: %w", err)
		}
		list = append(list, &el)
	}
	return list, rows.Err()
}

// UpdateQuantities persiste el saldo de cada lote. El CHECK quantity >= 0 de la tabla
// rechaza cualquier saldo negativo.
func (r *LotRepo) UpdateQuantities(ctx context.Context, lots []*entity.Lot) error {
	for _, l := range lots {
		tag, err := r.q.Exec(ctx, `UPDATE lots SET quantity = $2 WHERE id = $1`, l.ID, l.Quantity)
		if err != nil {
			if isCheckViolation(err) {
				return fmt.Errorf("lote %s: %w", l.ID, domain.ErrInvalidQuantity)
			}
			return fmt.Errorf("update lot %s: %w", l.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("lote %s: %w", l.ID, domain.ErrNotFound)
		}
	}
	return nil
}

func (r *LotRepo) list(ctx context.Context, query string, arg any) ([]*entity.Lot, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := scanLot(rows, &l); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func scanLot(row pgx.Row, l *entity.Lot) error {
	if err := row.Scan(
		&l.ID, &l.ProductID, &l.StockID, &l.BatchCode, &l.ExpiryDate, &l.InitialQuantity, &l.Quantity, &l.UnitCost, &l.CreatedAt,
	); err != nil {
		return err
	}
	l.ExpiryDate = l.ExpiryDate.UTC()
	return nil
}
