package repository

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lib/pq"
	"github.com/oklog/ulid/v2"

	"github.com/unbounded/waitlist/internal/model"
)

// ErrInvalidTable is returned for table names that are not plain identifiers.
var ErrInvalidTable = errors.New("invalid table name")

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// InsertSignup mirrors one signup record. Each call inserts a new row,
// duplicates included, keyed by a fresh ULID.
func (r *Repository) InsertSignup(ctx context.Context, signup *model.Signup) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, email, created_at) VALUES ($1, $2, $3)`, r.table)

	id, err := ulid.New(ulid.Timestamp(signup.CreatedAt), rand.Reader)
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, id.String(), signup.Email, signup.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert signup: %w", err)
	}
	return nil
}

// quoteTable validates and quotes a possibly schema-qualified table name.
func quoteTable(name string) (string, error) {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTable, name)
	}

	quoted := make([]string, 0, len(parts))
	for _, part := range parts {
		if !identPattern.MatchString(part) {
			return "", fmt.Errorf("%w: %q", ErrInvalidTable, name)
		}
		quoted = append(quoted, pq.QuoteIdentifier(part))
	}
	return strings.Join(quoted, "."), nil
}
