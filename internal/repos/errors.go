package repos

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/velmark/marketops-backend/internal/domain"
)

// MapError classifies store failures into core error codes. Everything the
// switch does not recognize is a storage error: surfaced as-is, never retried
// here.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var coreErr *domain.Error
	if errors.As(err, &coreErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Wrap(domain.CodeNotFound, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return domain.Wrap(domain.CodeConflict, op, err) // unique_violation
		case "23503":
			return domain.Wrap(domain.CodeInvalidArgument, op, err) // foreign_key_violation
		}
	}

	return domain.Wrap(domain.CodeStorage, op, err)
}
