package inventory

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
	dominv "github.com/jhoicas/lotes-api/internal/domain/inventory"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
	"github.com/jhoicas/lotes-api/pkg/metrics"
)

// ScanResult lotes con saldo encontrados por horizonte (días).
type ScanResult map[int]int

// ExpiryScanner busca lotes que vencen exactamente dentro de N días y los avisa.
// Solo lee: no toma locks ni modifica lotes.
type ExpiryScanner struct {
	lotRepo  repository.LotRepository
	notifier ExpiryNotifier
	horizons []int
	loc      *time.Location
	now      func() time.Time
	log      zerolog.Logger
}

// NewExpiryScanner construye el escáner. Sin horizontes usa dominv.DefaultHorizons.
func NewExpiryScanner(
	lotRepo repository.LotRepository,
	notifier ExpiryNotifier,
	horizons []int,
	loc *time.Location,
	log zerolog.Logger,
) *ExpiryScanner {
	if len(horizons) == 0 {
		horizons = dominv.DefaultHorizons
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ExpiryScanner{
		lotRepo:  lotRepo,
		notifier: notifier,
		horizons: dominv.NormalizeHorizons(horizons),
		loc:      loc,
		now:      time.Now,
		log:      log,
	}
}

// WithClock reemplaza el reloj (tests).
func (s *ExpiryScanner) WithClock(now func() time.Time) *ExpiryScanner {
	s.now = now
	return s
}

// ScanExpiringLots recorre los horizontes de mayor a menor. Para cada uno calcula today+d,
// trae los lotes que vencen ese día, descarta los agotados y, si queda alguno, los avisa.
// Los errores de consulta o de envío se registran y no se propagan.
func (s *ExpiryScanner) ScanExpiringLots(ctx context.Context) ScanResult {
	today := dominv.DateOnly(s.now(), s.loc)
	result := make(ScanResult, len(s.horizons))

	for _, days := range s.horizons {
		if ctx.Err() != nil {
			s.log.Warn().Err(ctx.Err()).Msg("escaneo de vencimientos interrumpido")
			return result
		}
		target := dominv.TargetDate(today, days)
		lots, err := s.lotRepo.ListExpiringOn(ctx, target)
		if err != nil {
			s.log.Error().Err(err).Int("days", days).Time("target", target).Msg("consulta de lotes por vencer")
			continue
		}
		lots = dominv.WithStock(lots)
		result[days] = len(lots)
		if len(lots) == 0 {
			continue
		}
		s.dispatch(ctx, lots, days)
	}
	return result
}

// Run adapta el escáner a un job del scheduler.
func (s *ExpiryScanner) Run(ctx context.Context) {
	result := s.ScanExpiringLots(ctx)
	total := 0
	for _, n := range result {
		total += n
	}
	s.log.Info().Int("lots", total).Int("horizons", len(s.horizons)).Msg("escaneo de vencimientos finalizado")
}

func (s *ExpiryScanner) dispatch(ctx context.Context, lots []*entity.ExpiringLot, days int) {
	metrics.ObserveExpiring(days, len(lots))
	if s.notifier == nil {
		s.log.Warn().Int("days", days).Int("lots", len(lots)).Msg("lotes por vencer sin canal de aviso")
		return
	}
	if err := s.notifier.NotifyExpiringLots(ctx, lots, days); err != nil {
		metrics.ObserveNotifyFailure()
		s.log.Error().Err(err).Int("days", days).Int("lots", len(lots)).Msg("aviso de vencimiento fallido")
		return
	}
	s.log.Info().Int("days", days).Int("lots", len(lots)).Msg("aviso de vencimiento enviado")
}
