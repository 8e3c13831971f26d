package store

//go:generate mockgen -source=interfaces.go -destination=../mock/user_repository_mock.go -package=mock

import (
	"context"

	"github.com/viewtube/user-service/models"
)

// UserRepository is the persistence contract of the account subsystem.
// All lookups return [ErrUserNotFound] when no record matches; CreateUser
// returns [ErrUserAlreadyExists] when a unique index rejects the insert.
type UserRepository interface {
	// CreateUser persists a new account and returns the stored record with
	// server-assigned fields populated.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindByEmail returns the account registered under the given e-mail.
	FindByEmail(ctx context.Context, email string) (models.User, error)

	// FindByUsernameOrEmail returns any account whose username or e-mail
	// matches. Used to enforce uniqueness before registration.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (models.User, error)

	// FindByRefreshToken returns the account currently holding the given
	// refresh token.
	FindByRefreshToken(ctx context.Context, refreshToken string) (models.User, error)

	// FindByID returns a sanitized projection of the account: credential
	// fields (password hash, refresh token) are never read from storage.
	FindByID(ctx context.Context, userID int64) (models.User, error)

	// UpdateRefreshToken replaces the stored refresh token of the account.
	// An empty token clears the column, ending the session.
	UpdateRefreshToken(ctx context.Context, userID int64, refreshToken string) error
}
