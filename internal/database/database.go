// Package database centralises sqlx connection helpers.  The driver is
// go-sql-driver/mysql, the same one WordPress sites run on (MySQL or
// MariaDB).
//
// Public entry points:
//
//	Open(ctx, dsn)                    – conservative pool sizes.
//	OpenWithOptions(ctx, dsn, opts)   – fine-grained control.
//
// Both helpers Ping the database before returning, retrying a few times so
// the service can start alongside its database container.  Callers should
// Close() the returned *sqlx.DB when no longer needed.
package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Options tunes the pool and the startup ping.
type Options struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	PingRetries int
	PingBackoff time.Duration
}

// DefaultOptions: 10 open, 5 idle, 30-minute lifetime, 5 pings 2 s apart.
func DefaultOptions() Options {
	return Options{
		MaxOpen:     10,
		MaxIdle:     5,
		MaxLifetime: 30 * time.Minute,
		PingRetries: 5,
		PingBackoff: 2 * time.Second,
	}
}

// Open returns a *sqlx.DB with DefaultOptions.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	return OpenWithOptions(ctx, dsn, DefaultOptions())
}

// OpenWithOptions opens a MySQL pool tuned by opts.
func OpenWithOptions(ctx context.Context, dsn string, opts Options) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}
	configure(db, opts)

	if err := ping(ctx, db, opts); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func configure(db *sqlx.DB, opts Options) {
	db.SetMaxOpenConns(opts.MaxOpen)
	db.SetMaxIdleConns(opts.MaxIdle)
	db.SetConnMaxLifetime(opts.MaxLifetime)
}

// ping tries up to PingRetries+1 times, PingBackoff apart.
func ping(ctx context.Context, db *sqlx.DB, opts Options) error {
	var err error
	for attempt := 0; attempt <= opts.PingRetries; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		zap.S().Warnw("database ping failed", "attempt", attempt+1, "err", err)

		if attempt == opts.PingRetries {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("database: ping: %w", ctx.Err())
		case <-time.After(opts.PingBackoff):
		}
	}
	return fmt.Errorf("database: ping: %w", err)
}
