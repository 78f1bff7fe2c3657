package sqlite

import (
	"context"
	"errors"
	"fmt"
	"suburban/config"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const (
	DriverName = "sqlite3"

	writeMaxOpenConnection = 1
)

// Connection splits the store into a WAL reader pool and a single-connection writer. SQLite
// allows one writer at a time, so funnelling every write through one connection turns lock
// contention into queueing instead of SQLITE_BUSY errors.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	conn, err := Open(
		config.DB.SQLite.Path,
		config.DB.SQLite.BusyTimeoutMS,
		config.DB.SQLite.MaxReadConns,
		config.DB.SQLite.MaxRetry,
		config.DB.SQLite.RetryWaitTime,
	)
	if err != nil {
		log.Fatal().Err(err).Str("path", config.DB.SQLite.Path).Msg("Failed to open database")
	}

	return conn
}

// Open opens the writer first so the file and its WAL exist before readers attach.
func Open(path string, busyTimeoutMS, maxReadConns, maxRetry, waitTime int) (*Connection, error) {
	write, err := connect("write", WriteDSN(path, busyTimeoutMS), maxRetry, waitTime)
	if err != nil {
		return nil, err
	}

	write.SetMaxOpenConns(writeMaxOpenConnection)
	write.SetMaxIdleConns(writeMaxOpenConnection)
	write.SetConnMaxLifetime(0)

	read, err := connect("read", ReadDSN(path, busyTimeoutMS), maxRetry, waitTime)
	if err != nil {
		_ = write.Close()

		return nil, err
	}

	if maxReadConns > 0 {
		read.SetMaxOpenConns(maxReadConns)
		read.SetMaxIdleConns(maxReadConns)
	}

	return &Connection{
		Read:  read,
		Write: write,
	}, nil
}

// WriteDSN enables WAL and takes the write lock when a transaction begins, so two writers
// never deadlock upgrading a shared lock.
func WriteDSN(path string, busyTimeoutMS int) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=%d&_txlock=immediate", path, busyTimeoutMS)
}

func ReadDSN(path string, busyTimeoutMS int) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=%d", path, busyTimeoutMS)
}

func connect(name, dsn string, maxRetry, waitTime int) (*sqlx.DB, error) {
	var lastErr error

	for retry := range max(maxRetry, 1) {
		db, err := sqlx.Connect(DriverName, dsn)
		if err == nil {
			log.Info().Str("name", name).Str("dsn", dsn).Msg("Connected to database")

			return db, nil
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("name", name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to %s database: %w", name, lastErr)
}

func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}

// Ping checks both pools, used by the health endpoint.
func (c *Connection) Ping(ctx context.Context) error {
	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("read pool: %w", err)
	}

	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("write pool: %w", err)
	}

	return nil
}

// IsUniqueViolation reports whether err comes from a UNIQUE or PRIMARY KEY constraint.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
