package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/leasingsys/leasing-service/internal/config"
	"github.com/leasingsys/leasing-service/internal/repositories"
	"github.com/leasingsys/leasing-service/internal/services"
	"github.com/leasingsys/leasing-service/internal/utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

// App holds the wired application: config, the selected record store and the
// leasing service built on top of it.
type App struct {
	Config         *config.Config
	DB             *pgxpool.Pool
	LeasingRepo    repositories.LeasingRepository
	LeasingService *services.LeasingService
}

func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		utils.Logger.Info("Using in-memory record store")
		app.LeasingRepo = repositories.NewMemoryLeasingRepository(SampleLeasings())

	case config.StoreBackendPostgres:
		pool, err := connectWithRetry(cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		app.DB = pool

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}

		app.LeasingRepo = repositories.NewLeasingRepository(pool)
		if err := SeedSampleLeasings(app.LeasingRepo); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	app.LeasingService = services.NewLeasingService(app.LeasingRepo)
	return app, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
		utils.Logger.Info("leasing-service DB connection closed.")
	}
	utils.Logger.Info("leasing-service app shutting down.")
}

func connectWithRetry(databaseURL string) (*pgxpool.Pool, error) {
	var (
		dbPool  *pgxpool.Pool
		err     error
		backoff = initialBackoff
	)

	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		dbPool, err = newDBPool(ctx, databaseURL)
		if err == nil {
			utils.Logger.Infof("leasing-service connected to DB on attempt %d", i)
			return dbPool, nil
		}

		utils.Logger.WithError(err).Warnf(
			"Failed DB connect on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)

		if i == maxRetries {
			return nil, fmt.Errorf("unable to connect after %d attempts: %w", maxRetries, err)
		}
		time.Sleep(backoff)
		backoff *= 2
	}
	return nil, err
}

func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	return pgxpool.ConnectConfig(ctx, cfg)
}
