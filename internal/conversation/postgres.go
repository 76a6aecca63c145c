package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voicevedic/voicevedic/internal/reliability"
)

// PostgresStore persists transcripts in PostgreSQL, one JSON document per
// namespace.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	// The pool connects lazily; the schema statement is the first real
	// round trip, so give the database a few attempts to come up.
	var initErr error
	for attempt := 0; attempt < 3; attempt++ {
		if initErr = initSchema(ctx, pool); initErr == nil {
			break
		}
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(reliability.ExponentialBackoff(attempt, 200*time.Millisecond, 2*time.Second)):
		}
	}
	if initErr != nil {
		pool.Close()
		return nil, initErr
	}

	return &PostgresStore{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmt := `CREATE TABLE IF NOT EXISTS conversation_logs (
		namespace TEXT PRIMARY KEY,
		payload JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, namespace string) ([]Message, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM conversation_logs WHERE namespace=$1`,
		namespace,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	var out []Message
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Save(ctx context.Context, namespace string, messages []Message) error {
	raw, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO conversation_logs (namespace, payload, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (namespace) DO UPDATE SET payload=$2, updated_at=$3`,
		namespace,
		raw,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context, namespace string) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM conversation_logs WHERE namespace=$1`, namespace,
	); err != nil {
		return fmt.Errorf("clear transcript: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
