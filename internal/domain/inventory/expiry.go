package inventory

import (
	"slices"
	"time"

	"github.com/jhoicas/lotes-api/internal/domain/entity"
)

// DefaultHorizons días de anticipación para los avisos de vencimiento.
var DefaultHorizons = []int{30, 20, 14, 7, 3}

// DateOnly trunca t a la fecha calendario en loc y la devuelve como 00:00 UTC,
// que es como se guardan los vencimientos.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TargetDate fecha calendario today + days.
func TargetDate(today time.Time, days int) time.Time {
	return today.AddDate(0, 0, days)
}

// NormalizeHorizons descarta valores no positivos y duplicados y ordena de mayor a menor.
func NormalizeHorizons(horizons []int) []int {
	out := make([]int, 0, len(horizons))
	for _, h := range horizons {
		if h > 0 && !slices.Contains(out, h) {
			out = append(out, h)
		}
	}
	slices.SortFunc(out, func(a, b int) int { return b - a })
	return out
}

// WithStock filtra los lotes con saldo.
func WithStock(lots []*entity.ExpiringLot) []*entity.ExpiringLot {
	out := make([]*entity.ExpiringLot, 0, len(lots))
	for _, l := range lots {
		if l.Quantity > 0 {
			out = append(out, l)
		}
	}
	return out
}
