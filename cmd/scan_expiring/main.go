// scan_expiring ejecuta una sola pasada del escaneo de lotes por vencer y termina.
// Pensado para cron externo cuando SCAN_ENABLED=false en la API.
//
// Uso: go run ./cmd/scan_expiring
package main

import (
	"context"
	"os/signal"
	"sort"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/infrastructure/notify"
	"github.com/jhoicas/lotes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/lotes-api/pkg/config"
	"github.com/jhoicas/lotes-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		AppName: cfg.App.Name,
	})
	if cfg.App.Storage != config.StoragePostgres {
		log.Fatal().Str("storage", cfg.App.Storage).Msg("scan_expiring requiere APP_STORAGE=postgres")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	notifier := notify.FromConfig(cfg.Telegram, cfg.SMTP, log.Component("notify"))
	scanner := inventory.NewExpiryScanner(
		postgres.NewLotRepository(pool), notifier,
		cfg.Scan.Horizons, cfg.Scan.Location(), log.Component("expiry_scanner"),
	)

	result := scanner.ScanExpiringLots(ctx)

	days := make([]int, 0, len(result))
	for d := range result {
		days = append(days, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(days)))
	summary := zerolog.Dict()
	total := 0
	for _, d := range days {
		summary = summary.Int(strconv.Itoa(d), result[d])
		total += result[d]
	}
	log.Info().Dict("lots_by_days", summary).Int("total", total).Msg("escaneo finalizado")
}
