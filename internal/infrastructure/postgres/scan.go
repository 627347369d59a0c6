package postgres

import "github.com/google/uuid"

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

// parseID returns the canonical form of a UUID primary key so lookups compare
// the column directly. A malformed id cannot match any row and yields notFound.
func parseID(id string, notFound error) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", notFound
	}
	return parsed.String(), nil
}
