package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/MKhiriev/go-project-tracker/models"
)

type userRepository struct {
	*DB
}

// NewUserRepository constructs a [UserRepository] on db.
func NewUserRepository(db *DB) UserRepository {
	return &userRepository{DB: db}
}

// CreateUser inserts user and returns it with UserID and CreatedAt set and
// the plaintext password dropped. A taken login yields
// [ErrLoginAlreadyExists].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	user.CreatedAt = time.Now().UTC()
	user.Password = ""

	query, args, err := buildInsertUserQuery(r.builder, user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.QueryRowContext(ctx, query, args...).Scan(&user.UserID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to insert user")

		if errors.Is(r.errorClassificator.Constraint(err), ErrAlreadyExists) {
			return models.User{}, ErrLoginAlreadyExists
		}
		return models.User{}, r.execError(err)
	}

	return user, nil
}

// FindUserByLogin loads the account with login, hash included.
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	query, args, err := buildSelectUserByLoginQuery(r.builder, login)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var u models.User
	err = r.QueryRowContext(ctx, query, args...).
		Scan(&u.UserID, &u.Login, &u.PasswordHash, &u.Name, &u.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.FindUserByLogin").Msg("failed to load user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return u, nil
}
