package sink

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresSchema creates the relational schema the relations are copied into.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS items (
    itemid         TEXT PRIMARY KEY,
    name           TEXT,
    currently      NUMERIC(12,2),
    first_bid      NUMERIC(12,2),
    number_of_bids INTEGER NOT NULL,
    buy_price      NUMERIC(12,2),
    started        TIMESTAMP NOT NULL,
    ends           TIMESTAMP NOT NULL,
    userid         TEXT NOT NULL,
    description    TEXT
);
CREATE TABLE IF NOT EXISTS users (
    userid   TEXT PRIMARY KEY,
    rating   INTEGER NOT NULL,
    location TEXT,
    country  TEXT
);
CREATE TABLE IF NOT EXISTS categories (
    itemid   TEXT NOT NULL,
    category TEXT NOT NULL,
    PRIMARY KEY (itemid, category)
);
CREATE TABLE IF NOT EXISTS bids (
    itemid TEXT NOT NULL,
    userid TEXT NOT NULL,
    time   TIMESTAMP NOT NULL,
    amount NUMERIC(12,2)
);
`

// PostgresSink bulk-loads relations into PostgreSQL with COPY.
type PostgresSink struct {
	pool *pgxpool.Pool
}

// NewPostgresSink connects to databaseURL and ensures the schema exists.
func NewPostgresSink(ctx context.Context, databaseURL string) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &PostgresSink{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresSink) Close() error {
	s.pool.Close()
	return nil
}

// WriteRelation truncates the table and copies rows into it in one transaction.
func (s *PostgresSink) WriteRelation(ctx context.Context, name string, rows [][]string) error {
	t, err := lookupTable(name)
	if err != nil {
		return writeErr(name, err)
	}

	values, err := postgresRows(t, rows)
	if err != nil {
		return writeErr(name, err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return writeErr(name, fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	tableName := strings.ToLower(t.name)

	if _, err := tx.Exec(ctx, "TRUNCATE "+pgx.Identifier{tableName}.Sanitize()); err != nil {
		return writeErr(name, fmt.Errorf("truncating %s: %w", tableName, err))
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{tableName}, postgresColumns(t), pgx.CopyFromRows(values)); err != nil {
		return writeErr(name, fmt.Errorf("copying into %s: %w", tableName, err))
	}

	if err := tx.Commit(ctx); err != nil {
		return writeErr(name, fmt.Errorf("committing: %w", err))
	}

	return nil
}

func postgresColumns(t table) []string {
	cols := make([]string, len(t.columns))
	for i, c := range t.columns {
		cols[i] = strings.ToLower(c.name)
	}

	return cols
}

// postgresRows decodes rows into values COPY can encode.
func postgresRows(t table, rows [][]string) ([][]any, error) {
	out := make([][]any, 0, len(rows))

	for i, row := range rows {
		values, err := decodeRow(t, row, true)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		for j, c := range t.columns {
			if c.kind != kindMoney {
				continue
			}

			n, err := toNumeric(values[j])
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i, c.name, err)
			}

			values[j] = n
		}

		out = append(out, values)
	}

	return out, nil
}

func toNumeric(v any) (pgtype.Numeric, error) {
	s, ok := v.(string)
	if !ok {
		return pgtype.Numeric{Valid: false}, nil
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{}, err
	}

	return n, nil
}
