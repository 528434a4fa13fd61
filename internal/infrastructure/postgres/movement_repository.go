package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL (usable con pool o tx).
// Cabecera en movements y líneas en movement_lines; ambas se insertan en la misma tx.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento y sus líneas en orden.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO movements (id, stock_id, type, occurred_at, created_by)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid)`,
		m.ID, m.StockID, string(m.Type), m.Timestamp, m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	for i, line := range m.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO movement_lines (movement_id, line_no, lot_id, product_id, quantity)
			VALUES ($1, $2, $3, $4, $5)`,
			m.ID, i+1, line.LotID, line.ProductID, line.Quantity,
		)
		if err != nil {
			if isCheckViolation(err) {
				return fmt.Errorf("línea %d: %w", i+1, domain.ErrInvalidQuantity)
			}
			return fmt.Errorf("insert movement line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un movimiento con sus líneas.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	list, err := r.query(ctx, "m.id = $1", []any{id})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// List devuelve los movimientos que cumplen el filtro, ordenados por fecha.
// Con ProductID se devuelven completos los movimientos que tienen alguna línea del producto.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.StockID != "" {
		add("m.stock_id = $%d", f.StockID)
	}
	if f.ProductID != "" {
		add("m.id IN (SELECT movement_id FROM movement_lines WHERE product_id = $%d)", f.ProductID)
	}
	if f.From != nil {
		add("m.occurred_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("m.occurred_at < $%d", *f.To)
	}
	where := "TRUE"
	if len(conds) > 0 {
		where = strings.Join(conds, " AND ")
	}
	return r.query(ctx, where, args)
}

// query trae cabeceras y líneas en una sola consulta y las agrupa por movimiento.
func (r *MovementRepo) query(ctx context.Context, where string, args []any) ([]*entity.Movement, error) {
	sql := `
		SELECT m.id, m.stock_id, m.type, m.occurred_at, COALESCE(m.created_by::text, ''),
		       ml.lot_id, ml.product_id, ml.quantity
		FROM movements m
		LEFT JOIN movement_lines ml ON ml.movement_id = m.id
		WHERE ` + where + `
		ORDER BY m.occurred_at, m.id, ml.line_no`
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var (
		list    []*entity.Movement
		current *entity.Movement
	)
	for rows.Next() {
		var (
			id, stockID, typ, createdBy string
			m                           entity.Movement
			lotID, productID            *string
			qty                         *int
		)
		if err := rows.Scan(&id, &stockID, &typ, &m.Timestamp, &createdBy, &lotID, &productID, &qty); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if current == nil || current.ID != id {
			m.ID, m.StockID, m.Type, m.CreatedBy = id, stockID, entity.MovementType(typ), createdBy
			current = &m
			list = append(list, current)
		}
		if lotID != nil {
			current.Lines = append(current.Lines, entity.MovementLine{
				LotID: *lotID, ProductID: *productID, Quantity: *qty,
			})
		}
	}
	return list, rows.Err()
}
