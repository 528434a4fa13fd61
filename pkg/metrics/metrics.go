// Package metrics expone los contadores Prometheus del motor de inventario.
// Se registran en el registry global; /metrics los publica vía promhttp.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lotes"

// Resultados posibles de un retiro.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

var (
	withdrawals = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "withdrawals_total",
		Help:      "Retiros FEFO procesados por resultado.",
	}, []string{"result"})

	withdrawnUnits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "withdrawn_units_total",
		Help:      "Unidades retiradas de lotes.",
	})

	lotsTouched = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "withdrawal_lots_touched",
		Help:      "Cantidad de lotes afectados por retiro.",
		Buckets:   []float64{1, 2, 3, 5, 8, 13},
	})

	intakes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "intakes_total",
		Help:      "Lotes dados de alta (movimientos ENTRADA).",
	})

	expiringLots = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "expiring_lots_notified_total",
		Help:      "Lotes avisados por vencimiento, por horizonte en días.",
	}, []string{"days"})

	notifyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notify_failures_total",
		Help:      "Envíos de avisos de vencimiento fallidos.",
	})

	txRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tx_retries_total",
		Help:      "Reintentos de transacción por conflicto de serialización.",
	})
)

// ObserveWithdrawal registra un retiro. units y lots solo cuentan si result es ResultOK.
func ObserveWithdrawal(result string, units, lots int) {
	withdrawals.WithLabelValues(result).Inc()
	if result != ResultOK {
		return
	}
	withdrawnUnits.Add(float64(units))
	lotsTouched.Observe(float64(lots))
}

// ObserveIntake registra el alta de un lote.
func ObserveIntake() { intakes.Inc() }

// ObserveExpiring registra n lotes avisados para el horizonte days.
func ObserveExpiring(days, n int) {
	expiringLots.WithLabelValues(strconv.Itoa(days)).Add(float64(n))
}

// ObserveNotifyFailure registra un aviso que no se pudo entregar.
func ObserveNotifyFailure() { notifyFailures.Inc() }

// ObserveTxRetry registra un reintento de transacción.
func ObserveTxRetry() { txRetries.Inc() }
