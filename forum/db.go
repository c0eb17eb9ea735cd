// forum/db.go
package forum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Browser sessions only; questions and comments stay in memory.
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    token TEXT PRIMARY KEY,
    data BYTEA NOT NULL,
    expiry TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions (expiry);
`

// Database is a Postgres backed scs.Store, so a logged in browser survives a
// server restart.
type Database struct {
	pool *pgxpool.Pool
}

func NewDatabase(ctx context.Context, connectionString string) (*Database, error) {
	pool, err := pgxpool.New(ctx, connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Database{pool: pool}, nil
}

func (d *Database) CreateTables(ctx context.Context) error {
	_, err := d.pool.Exec(ctx, schema)
	return err
}

func (d *Database) Close() {
	d.pool.Close()
}

// Find implements scs.Store.
func (d *Database) Find(token string) ([]byte, bool, error) {
	var data []byte
	query := `SELECT data FROM sessions WHERE token = $1 AND expiry > NOW()`
	err := d.pool.QueryRow(context.Background(), query, token).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to find session: %w", err)
	}
	return data, true, nil
}

// Commit implements scs.Store.
func (d *Database) Commit(token string, b []byte, expiry time.Time) error {
	query := `
        INSERT INTO sessions (token, data, expiry)
        VALUES ($1, $2, $3)
        ON CONFLICT (token) DO UPDATE SET
            data = EXCLUDED.data,
            expiry = EXCLUDED.expiry;
    `
	if _, err := d.pool.Exec(context.Background(), query, token, b, expiry); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}
	return nil
}

// Delete implements scs.Store.
func (d *Database) Delete(token string) error {
	_, err := d.pool.Exec(context.Background(), `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

func (d *Database) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := d.pool.Exec(ctx, `DELETE FROM sessions WHERE expiry < NOW()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// StartCleanup removes expired sessions every interval until ctx is done.
func (d *Database) StartCleanup(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := d.DeleteExpired(ctx)
			if err != nil {
				logger.Error("session cleanup failed", slog.String("error", err.Error()))
				continue
			}
			if n > 0 {
				logger.Info("expired sessions removed", slog.Int64("count", n))
			}
		}
	}
}
