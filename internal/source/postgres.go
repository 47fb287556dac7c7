package source

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/abrahamrubi0/bettrack/internal/domain"
)

// PostgresSource reads pending bets from a Postgres table with the same shape
// as the JSON drop file. Rows stay in the table until the upstream pipeline
// clears them; the tracker's processed guard keeps re-reads harmless.
type PostgresSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSource creates a PostgresSource reading from the given table.
func NewPostgresSource(pool *pgxpool.Pool, table string) *PostgresSource {
	if table == "" {
		table = "bets"
	}
	return &PostgresSource{pool: pool, table: table}
}

// Connect opens a pgx pool for the given DSN and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("source: postgres connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("source: postgres ping: %w", err)
	}
	return pool, nil
}

// Pending returns all bet rows ordered by id.
func (s *PostgresSource) Pending(ctx context.Context) ([]domain.BetRecord, error) {
	query := fmt.Sprintf(`
		SELECT id,
		       COALESCE(sport, ''),
		       COALESCE(league, ''),
		       COALESCE(visitor, ''),
		       COALESCE(home, ''),
		       COALESCE(bet_type, ''),
		       COALESCE(the_bet, ''),
		       COALESCE(line::text, ''),
		       COALESCE(period, '')
		FROM %s
		ORDER BY id`, s.table)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("source: query bets: %w", err)
	}
	defer rows.Close()

	var bets []domain.BetRecord
	for rows.Next() {
		var rec domain.BetRecord
		var line string
		if err := rows.Scan(
			&rec.ID, &rec.Sport, &rec.League, &rec.Visitor, &rec.Home,
			&rec.BetType, &rec.TheBet, &line, &rec.Period,
		); err != nil {
			return nil, fmt.Errorf("source: scan bet row: %w", err)
		}
		if line != "" {
			if d, err := decimal.NewFromString(line); err == nil {
				rec.Line = d
			}
		}
		bets = append(bets, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("source: iterate bet rows: %w", err)
	}
	return bets, nil
}

var _ domain.BetSource = (*PostgresSource)(nil)
