// Package app assembles the domain services on top of the configured store.
package app

import (
	"context"
	"fmt"

	"laundrydesk/internal/core/tx"
	"laundrydesk/internal/domain/backfill"
	"laundrydesk/internal/domain/catalogs/hotel"
	"laundrydesk/internal/domain/finance"
	"laundrydesk/internal/domain/laundry"
	"laundrydesk/internal/infrastructure/storage/memory"
	"laundrydesk/internal/infrastructure/storage/postgres"
	"laundrydesk/internal/infrastructure/storage/postgres/catalog_repo"
	"laundrydesk/internal/infrastructure/storage/postgres/finance_repo"
	"laundrydesk/internal/infrastructure/storage/postgres/laundry_repo"
	"laundrydesk/pkg/logger"
	"laundrydesk/pkg/numerator"
)

// Config selects and sizes the store.
type Config struct {
	// DatabaseURL is the Postgres DSN. Empty selects the in-memory store.
	DatabaseURL string
	MaxConns    int32

	// ApplicationName tags the database sessions of this binary.
	ApplicationName string
}

// App holds the wired services.
type App struct {
	// Pool is nil for the in-memory store.
	Pool *postgres.Pool

	Hotels   *hotel.Service
	Services *laundry.Service
	Finance  *finance.Service
	Backfill *backfill.Engine
}

// stores is the storage-specific half of the wiring.
type stores struct {
	txm          tx.Manager
	hotels       hotel.Repository
	services     laundry.Repository
	transactions finance.Repository
	migrations   backfill.AuditLog
	codes        hotel.CodeGenerator
}

// New connects the configured store and wires the services.
func New(ctx context.Context, cfg Config) (*App, error) {
	if cfg.DatabaseURL == "" {
		logger.Warn(ctx, "DATABASE_URL not set, using in-memory store")
		return assemble(nil, memoryStores()), nil
	}

	poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.ApplicationName != "" {
		poolCfg.ApplicationName = cfg.ApplicationName
	}
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	pool.LogStats(ctx)

	st, err := postgresStores(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return assemble(pool, st), nil
}

// NewInMemory wires the services on the in-memory store.
func NewInMemory() *App {
	return assemble(nil, memoryStores())
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

func memoryStores() stores {
	return stores{
		txm:          tx.Nop{},
		hotels:       memory.NewHotelRepo(),
		services:     memory.NewServiceRepo(),
		transactions: memory.NewTransactionRepo(),
		migrations:   memory.NewMigrationLog(),
		codes:        numerator.NewMemory(),
	}
}

func postgresStores(pool *postgres.Pool) (stores, error) {
	txm := postgres.NewTxManager(pool)
	migrations, err := postgres.NewMigrationLog(txm)
	if err != nil {
		return stores{}, fmt.Errorf("migration log: %w", err)
	}
	return stores{
		txm:          txm,
		hotels:       catalog_repo.NewHotelRepo(txm),
		services:     laundry_repo.NewServiceRepo(txm),
		transactions: finance_repo.NewTransactionRepo(txm),
		migrations:   migrations,
		codes:        numerator.New(pool.Unwrap()),
	}, nil
}

func assemble(pool *postgres.Pool, st stores) *App {
	hotels := hotel.NewService(st.hotels, st.txm, st.codes)
	fin := finance.NewService(st.transactions, st.txm)
	services := laundry.NewService(st.services, hotels, fin, st.txm)

	return &App{
		Pool:     pool,
		Hotels:   hotels,
		Services: services,
		Finance:  fin,
		Backfill: backfill.NewEngine(st.services, hotels, fin, st.migrations),
	}
}
