// Package memory implementa los repositorios y el TxRunner en memoria.
// Sirve para APP_STORAGE=memory y para los tests de casos de uso y handlers.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// ledger estado mutable por transacciones: lotes y movimientos.
type ledger struct {
	lots      map[string]entity.Lot
	movements []entity.Movement
}

func (l *ledger) clone() *ledger {
	out := &ledger{
		lots:      make(map[string]entity.Lot, len(l.lots)),
		movements: slices.Clone(l.movements),
	}
	for id, lot := range l.lots {
		out.lots[id] = lot
	}
	return out
}

// Store guarda todas las entidades. txMu serializa las escrituras de lotes y movimientos
// (equivale al SELECT FOR UPDATE de Postgres); mu protege los mapas.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	users    map[string]entity.User
	stocks   map[string]entity.Stock
	products map[string]entity.Product
	ledger   *ledger
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]entity.User),
		stocks:   make(map[string]entity.Stock),
		products: make(map[string]entity.Product),
		ledger:   &ledger{lots: make(map[string]entity.Lot)},
	}
}

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

// Stocks repositorio de stocks.
func (s *Store) Stocks() repository.StockRepository { return &stockRepo{s: s} }

// Products repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Lots repositorio de lotes fuera de transacción.
func (s *Store) Lots() repository.LotRepository { return &lotRepo{s: s} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{s: s} }

// TxRunner ejecuta fn sobre una copia del ledger y la publica solo si fn no falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el TxRunner del store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// Run implementa inventory.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.RLock()
	staged := r.s.ledger.clone()
	r.s.mu.RUnlock()

	if err := fn(&lotRepo{s: r.s, tx: staged}, &movementRepo{s: r.s, tx: staged}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	r.s.ledger = staged
	r.s.mu.Unlock()
	return nil
}

// write ejecuta una escritura fuera de transacción con el mismo aislamiento que Run.
func (s *Store) write(fn func(l *ledger) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.ledger)
}

// read ejecuta una lectura sobre tx o, si es nil, sobre el ledger publicado.
func (s *Store) read(tx *ledger, fn func(l *ledger)) {
	if tx != nil {
		fn(tx)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.ledger)
}
