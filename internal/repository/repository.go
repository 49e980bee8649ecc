package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"exam-byte/internal/domain"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// placeholders returns ":start, :start+1, ..." for n Oracle bind variables.
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf(":%d", start+i)
	}
	return strings.Join(parts, ", ")
}

func boolToNumber(b bool) int {
	if b {
		return 1
	}
	return 0
}

// isUniqueViolation reports an Oracle unique constraint error (ORA-00001).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "ORA-00001")
}

// checkRowsAffected turns a write that matched no row into a not-found error.
func checkRowsAffected(result sql.Result, notFound string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError(notFound)
	}
	return nil
}
