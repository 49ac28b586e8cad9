package dolt

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	// MySQL wire protocol driver; Dolt's sql-server speaks it natively.
	_ "github.com/go-sql-driver/mysql"
)

// Open connects to a dolt sql-server and verifies it is reachable. A short
// TCP probe runs first so a stopped server fails in under a second instead
// of waiting out the driver's dial timeout. The initial ping retries
// transient failures with exponential backoff; operations on the returned
// handle never retry.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*sql.DB, error) {
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	probe, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("no dolt sql-server listening on %s: %w\nHint: start one with 'dolt sql-server' in the database directory", addr, err)
	}
	_ = probe.Close()

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open connection to %s: %w", addr, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(min(5, cfg.MaxOpenConns))
	db.SetConnMaxLifetime(5 * time.Minute)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxElapsedTime = 5 * time.Second
	err = backoff.Retry(func() error {
		pingErr := db.PingContext(ctx)
		if pingErr != nil && isRetryableError(pingErr) {
			return pingErr
		}
		if pingErr != nil {
			return backoff.Permanent(pingErr)
		}
		return nil
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database %q not reachable at %s: %w", cfg.Database, addr, err)
	}

	logger.Debug("connected to dolt sql-server", "addr", addr, "database", cfg.Database)
	return db, nil
}
