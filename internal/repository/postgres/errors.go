package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Gi2009/cod-back/internal/model"
)

const (
	uniqueViolation = "23505"

	usersEmailKey = "users_email_key"
	usersCPFKey   = "users_cpf_key"
)

// mapUniqueViolation turns a unique constraint failure on users into the
// matching domain error. Other errors are returned unchanged.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case usersEmailKey:
		return model.ErrEmailTaken
	case usersCPFKey:
		return model.ErrCPFTaken
	}
	return err
}
