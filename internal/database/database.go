// Package database owns the single live MySQL connection handle and the
// user table persistence built on it. The handle is replaced wholesale
// on reconnect, never mutated in place; a connection-lost failure
// schedules exactly one reconnect attempt after a fixed delay, while
// any other failure during reconnect is escalated on the Fatal channel.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/Renu-telugu/user-management-app/internal/config"
)

// DefaultReconnectWait is the delay before a reconnect attempt after a
// lost connection.
const DefaultReconnectWait = 2 * time.Second

// DB wraps the MySQL connection handle.
type DB struct {
	dsn           string
	reconnectWait time.Duration

	mu   sync.RWMutex
	conn *sql.DB

	reconnectPending atomic.Bool
	closed           atomic.Bool
	fatal            chan error
}

// Open connects to MySQL using the given settings and verifies the
// connection with a ping.
func Open(cfg *config.Database) (*DB, error) {
	db := &DB{
		dsn:           cfg.DSN(),
		reconnectWait: DefaultReconnectWait,
		fatal:         make(chan error, 1),
	}
	if err := db.Connect(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	log.Debug().Str("host", cfg.Host).Str("database", cfg.Name).Msg("Database connection established")
	return db, nil
}

// Connect closes any existing handle (close errors are logged and
// ignored) and replaces it with a freshly opened and pinged one. A
// query racing the swap either completes on the old handle or fails
// with a QueryError; that race is tolerated.
func (db *DB) Connect() error {
	db.mu.RLock()
	old := db.conn
	db.mu.RUnlock()
	if old != nil {
		if err := old.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing previous connection")
		}
	}

	conn, err := sql.Open("mysql", db.dsn)
	if err != nil {
		return err
	}

	// One live connection, matching the single-handle model.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return err
	}

	db.mu.Lock()
	db.conn = conn
	db.mu.Unlock()
	return nil
}

// Fatal delivers errors for which no recovery policy exists. The
// process entrypoint watches this channel and exits on receive.
func (db *DB) Fatal() <-chan error {
	return db.fatal
}

// Close shuts the handle down and stops any further reconnects.
func (db *DB) Close() error {
	db.closed.Store(true)
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

func (db *DB) handle() *sql.DB {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.conn
}

// observe wraps a driver failure in a QueryError and, when it
// classifies as a lost connection, schedules a reconnect.
func (db *DB) observe(op string, err error) error {
	if IsConnectionLost(err) {
		db.scheduleReconnect(err)
	}
	return &QueryError{Op: op, Err: err}
}

// scheduleReconnect arms a single delayed reconnect. Further lost-
// connection errors while one is pending are no-ops; each new loss
// after a recovery schedules one more attempt.
func (db *DB) scheduleReconnect(cause error) {
	if db.closed.Load() {
		return
	}
	if !db.reconnectPending.CompareAndSwap(false, true) {
		return
	}
	log.Warn().Err(cause).Dur("delay", db.reconnectWait).Msg("Database connection lost, reconnecting")
	time.AfterFunc(db.reconnectWait, db.reconnect)
}

func (db *DB) reconnect() {
	if db.closed.Load() {
		db.reconnectPending.Store(false)
		return
	}

	err := db.Connect()
	db.reconnectPending.Store(false)
	if err == nil {
		log.Info().Msg("Database connection re-established")
		return
	}

	if IsConnectionLost(err) {
		db.scheduleReconnect(err)
		return
	}

	// No recovery policy for this error class; escalate to the
	// process supervisor.
	select {
	case db.fatal <- err:
	default:
	}
}

// Transaction wraps fn in a database transaction.
func (db *DB) Transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.handle().BeginTx(ctx, nil)
	if err != nil {
		return db.observe("begin transaction", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("Failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return db.observe("commit transaction", err)
	}
	return nil
}
