package fixings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// Schema creates the fixings table.
const Schema = `
CREATE TABLE IF NOT EXISTS index_fixings (
	index_name  TEXT             NOT NULL,
	fixing_date DATE             NOT NULL,
	rate        DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (index_name, fixing_date)
)`

const (
	selectFixing = `SELECT rate FROM index_fixings WHERE index_name = $1 AND fixing_date = $2`
	upsertFixing = `
		INSERT INTO index_fixings (index_name, fixing_date, rate)
		VALUES ($1, $2, $3)
		ON CONFLICT (index_name, fixing_date) DO UPDATE SET rate = EXCLUDED.rate`
)

// PostgresStore keeps fixings in PostgreSQL.
type PostgresStore struct {
	db      *sqlx.DB
	timeout time.Duration
	log     zerolog.Logger
}

// OpenPostgres connects with the lib/pq driver, checks the connection and
// creates the fixings table when missing.
func OpenPostgres(ctx context.Context, dsn string, timeout time.Duration, log zerolog.Logger) (*PostgresStore, error) {
	if dsn == "" {
		return nil, errors.New("fixings: postgres DSN is required")
	}
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("fixings: connect postgres: %w", err)
	}
	return PreparePostgres(ctx, db, timeout, log)
}

// PreparePostgres wraps an open handle and runs Migrate. The handle is closed
// when the migration fails.
func PreparePostgres(ctx context.Context, db *sqlx.DB, timeout time.Duration, log zerolog.Logger) (*PostgresStore, error) {
	store := NewPostgresStore(db, timeout, log)
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func NewPostgresStore(db *sqlx.DB, timeout time.Duration, log zerolog.Logger) *PostgresStore {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PostgresStore{
		db:      db,
		timeout: timeout,
		log:     log.With().Str("store", "postgres").Logger(),
	}
}

// Migrate creates the fixings table when missing.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if _, err := p.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("fixings: create table: %w", err)
	}
	return nil
}

func (p *PostgresStore) Fixing(ctx context.Context, indexName string, date time.Time) (float64, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var rate float64
	err := p.db.GetContext(ctx, &rate, selectFixing, indexName, dateKey(date))
	if errors.Is(err, sql.ErrNoRows) {
		p.log.Debug().Str("index", indexName).Str("date", dateKey(date)).Msg("fixing not found")
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("fixings: select %s %s: %w", indexName, dateKey(date), err)
	}
	return rate, true, nil
}

func (p *PostgresStore) Add(ctx context.Context, indexName string, date time.Time, rate float64) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if _, err := p.db.ExecContext(ctx, upsertFixing, indexName, dateKey(date), rate); err != nil {
		return fmt.Errorf("fixings: upsert %s %s: %w", indexName, dateKey(date), err)
	}
	return nil
}

// Close closes the database handle.
func (p *PostgresStore) Close() error {
	return p.db.Close()
}
