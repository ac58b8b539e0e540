// Package postgres provides PostgreSQL infrastructure components.
package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"laundrydesk/pkg/logger"
)

// BusinessTimezone is the session time zone. Pickup and income dates are
// Lima business days, so date truncation in SQL must happen there.
const BusinessTimezone = "America/Lima"

// requiredTables must exist before any repository is used.
var requiredTables = []string{
	"sys_sequences",
	"cat_hotels",
	"doc_laundry_services",
	"fin_transactions",
	"sys_migration_log",
}

// PoolConfig holds connection pool configuration.
type PoolConfig struct {
	DSN string

	// ApplicationName shows up in pg_stat_activity; each binary sets its own.
	ApplicationName string

	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration

	// StatementTimeout caps every statement on the session. Zero disables it.
	StatementTimeout time.Duration

	// SkipSchemaCheck disables the required-table check in NewPool.
	SkipSchemaCheck bool
}

// DefaultPoolConfig returns defaults sized for the API server.
func DefaultPoolConfig(dsn string) PoolConfig {
	return PoolConfig{
		DSN:               dsn,
		ApplicationName:   "laundrydesk",
		MaxConns:          10,
		MinConns:          1,
		MaxConnLifetime:   time.Hour,
		MaxConnIdleTime:   30 * time.Minute,
		HealthCheckPeriod: time.Minute,
		StatementTimeout:  30 * time.Second,
	}
}

// Validate checks the sizing before any connection is attempted.
func (c PoolConfig) Validate() error {
	if strings.TrimSpace(c.DSN) == "" {
		return fmt.Errorf("database DSN is empty")
	}
	if c.MaxConns <= 0 {
		return fmt.Errorf("max conns must be positive, got %d", c.MaxConns)
	}
	if c.MinConns < 0 || c.MinConns > c.MaxConns {
		return fmt.Errorf("min conns %d out of range [0, %d]", c.MinConns, c.MaxConns)
	}
	if c.StatementTimeout < 0 {
		return fmt.Errorf("statement timeout must not be negative")
	}
	return nil
}

// buildConfig turns cfg into a pgxpool config without connecting.
func buildConfig(cfg PoolConfig) (*pgxpool.Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod

	params := poolConfig.ConnConfig.RuntimeParams
	if cfg.ApplicationName != "" {
		params["application_name"] = cfg.ApplicationName
	}
	params["timezone"] = BusinessTimezone
	if cfg.StatementTimeout > 0 {
		params["statement_timeout"] = strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10)
	}
	return poolConfig, nil
}

// Pool wraps pgxpool.Pool.
type Pool struct {
	*pgxpool.Pool
	appName string
}

// Close closes all connections in the pool.
func (p *Pool) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}

// Unwrap returns the underlying pgxpool.Pool.
func (p *Pool) Unwrap() *pgxpool.Pool {
	return p.Pool
}

// NewPool connects, pings and verifies that the schema has been applied.
func NewPool(ctx context.Context, cfg PoolConfig) (*Pool, error) {
	poolConfig, err := buildConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	p := &Pool{Pool: pool, appName: cfg.ApplicationName}
	if !cfg.SkipSchemaCheck {
		if err := p.CheckSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return p, nil
}

// CheckSchema reports the required tables that are missing.
func (p *Pool) CheckSchema(ctx context.Context) error {
	var missing []string
	err := p.QueryRow(ctx,
		`SELECT coalesce(array_agg(t), '{}') FROM unnest($1::text[]) AS t WHERE to_regclass(t) IS NULL`,
		requiredTables,
	).Scan(&missing)
	if err != nil {
		return fmt.Errorf("check schema: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema not applied, missing tables %s (run db/migrations)", strings.Join(missing, ", "))
	}
	return nil
}

// PoolStats is a snapshot of pool usage.
type PoolStats struct {
	TotalConns      int32         `json:"total_conns"`
	AcquiredConns   int32         `json:"acquired_conns"`
	IdleConns       int32         `json:"idle_conns"`
	MaxConns        int32         `json:"max_conns"`
	AcquireCount    int64         `json:"acquire_count"`
	AcquireDuration time.Duration `json:"acquire_duration"`
}

// Stats returns the current pool statistics.
func (p *Pool) Stats() PoolStats {
	stat := p.Stat()
	return PoolStats{
		TotalConns:      stat.TotalConns(),
		AcquiredConns:   stat.AcquiredConns(),
		IdleConns:       stat.IdleConns(),
		MaxConns:        stat.MaxConns(),
		AcquireCount:    stat.AcquireCount(),
		AcquireDuration: stat.AcquireDuration(),
	}
}

// LogStats logs the current pool statistics.
func (p *Pool) LogStats(ctx context.Context) {
	stats := p.Stats()
	logger.Info(ctx, "database pool stats",
		"application", p.appName,
		"total", stats.TotalConns,
		"acquired", stats.AcquiredConns,
		"idle", stats.IdleConns,
		"max", stats.MaxConns,
	)
}
