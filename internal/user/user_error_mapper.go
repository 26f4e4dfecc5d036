package user

import (
	"errors"

	usererrors "github.com/abbie-leigh/hr-portal/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// mapRepositoryError translates storage-level failures into the module's
// error vocabulary so handlers never see driver errors.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return usererrors.ErrUsernameTaken
	}

	return err
}
