package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/lotes-api/internal/application/auth"
	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/application/usecase"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
	"github.com/jhoicas/lotes-api/internal/infrastructure/memory"
	"github.com/jhoicas/lotes-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/lotes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/lotes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/lotes-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/lotes-api/internal/interfaces/http"
	"github.com/jhoicas/lotes-api/pkg/config"
	"github.com/jhoicas/lotes-api/pkg/logger"
)

// storage repositorios y runner de transacciones del backend elegido.
type storage struct {
	users     repository.UserRepository
	stocks    repository.StockRepository
	products  repository.ProductRepository
	lots      repository.LotRepository
	movements repository.MovementRepository
	tx        inventory.TxRunner
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			users: s.Users(), stocks: s.Stocks(), products: s.Products(),
			lots: s.Lots(), movements: s.Movements(),
			tx:    memory.NewTxRunner(s),
			close: func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(pool, log.Component("migrate")); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &storage{
		users:     postgres.NewUserRepository(pool),
		stocks:    postgres.NewStockRepository(pool),
		products:  postgres.NewProductRepository(pool),
		lots:      postgres.NewLotRepository(pool),
		movements: postgres.NewMovementRepository(pool),
		tx:        postgres.NewTxRunner(pool, log.Component("tx")),
		close:     pool.Close,
	}, nil
}

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
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	aggregator := inventory.NewQuantityAggregator(st.lots)
	historyUC := inventory.NewHistoryUseCase(st.movements, st.stocks, st.products)
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Escaneo periódico de lotes por vencer
	if cfg.Scan.Enabled {
		notifier := notify.FromConfig(cfg.Telegram, cfg.SMTP, log.Component("notify"))
		log.Debug().
			Ints("horizons", cfg.Scan.Horizons).
			Str("at", cfg.Scan.At).
			Dur("interval", cfg.Scan.Interval).
			Str("timezone", cfg.Scan.Timezone).
			Bool("notifier", notifier != nil).
			Msg("escaneo de vencimientos habilitado")
		scanner := inventory.NewExpiryScanner(st.lots, notifier, cfg.Scan.Horizons, cfg.Scan.Location(), log.Component("expiry_scanner"))
		sched := scheduler.New("expiry_scan", cfg.Scan.Interval, scanner.Run, log.Component("scheduler"))
		if hour, minute, ok := cfg.Scan.Clock(); ok {
			sched.Daily(hour, minute, cfg.Scan.Location())
		}
		go sched.Run(ctx)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Lotes API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       usecase.NewUserUseCase(st.users),
		StockUC:      usecase.NewStockUseCase(st.stocks),
		ProductUC:    usecase.NewProductUseCase(st.products, st.stocks, aggregator),
		LotUC:        inventory.NewLotUseCase(st.tx, st.lots, st.stocks, st.products, log.Component("lots")),
		WithdrawalUC: inventory.NewWithdrawalUseCase(st.tx, st.stocks, st.products, log.Component("withdrawal")),
		HistoryUC:    historyUC,
		ReportUC:     inventory.NewReportUseCase(historyUC, st.products, st.lots, infrapdf.NewMarotoReportGenerator()),
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
