package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sdemirtas/registrar/internal/db"
	"github.com/sdemirtas/registrar/internal/pkg/identifier"
)

// IdentifierRepository hands out identifier sequence numbers scoped to a
// (prefix, year) pair. Next must run on the enrolling transaction: the
// upsert takes a row lock on the sequence row, so concurrent generators for
// the same pair serialize, and the consuming insert's unique constraint is
// the final arbiter against reuse.
type IdentifierRepository struct {
	db *pgxpool.Pool
}

// NewIdentifierRepository creates a new IdentifierRepository
func NewIdentifierRepository(pool *pgxpool.Pool) *IdentifierRepository {
	return &IdentifierRepository{db: pool}
}

// Next increments and returns the sequence value for (prefix, year).
func (r *IdentifierRepository) Next(ctx context.Context, q db.Querier, prefix string, year int) (int64, error) {
	var seq int64
	err := q.QueryRow(ctx, `
		INSERT INTO identifier_sequences (prefix, year, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, year)
		DO UPDATE SET last_value = identifier_sequences.last_value + 1
		RETURNING last_value`,
		prefix, year,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("error acquiring identifier sequence for %s%d: %w", prefix, year, err)
	}
	return seq, nil
}

// Generate produces the next identifier for (prefix, year).
func (r *IdentifierRepository) Generate(ctx context.Context, q db.Querier, prefix string, year int) (string, error) {
	seq, err := r.Next(ctx, q, prefix, year)
	if err != nil {
		return "", err
	}
	return identifier.Format(prefix, year, seq), nil
}
