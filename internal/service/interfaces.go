package service

//go:generate mockgen -source=interfaces.go -destination=../mock/auth_service_mock.go -package=mock

import (
	"context"

	"github.com/viewtube/user-service/models"
)

// RegisterInput carries the raw registration form data together with local
// file references produced by the multipart parser. Paths point at temporary
// files owned by the transport layer.
type RegisterInput struct {
	FullName string
	Email    string
	Username string
	Password string

	// AvatarPath is the local path of the uploaded avatar file. Required.
	AvatarPath string

	// CoverImagePath is the local path of the uploaded cover image.
	// Empty when the user did not attach one.
	CoverImagePath string
}

// AuthService manages the credential and session-token lifecycle of an
// account: registration, login, logout, and access-token verification.
type AuthService interface {
	// Register validates the input, uploads the media files, creates the
	// account, and returns its sanitized projection.
	Register(ctx context.Context, in RegisterInput) (models.User, error)

	// Login verifies the credentials, mints an access/refresh token pair,
	// and persists the refresh token on the account.
	Login(ctx context.Context, email, password string) (models.TokenPair, error)

	// Logout clears the stored refresh token of the owning account.
	// An empty or unknown token is a no-op, making logout idempotent.
	Logout(ctx context.Context, refreshToken string) error

	// Authenticate verifies an access token and returns its claims.
	Authenticate(ctx context.Context, accessToken string) (models.Token, error)

	// CurrentUser returns the sanitized projection of the given account.
	CurrentUser(ctx context.Context, userID int64) (models.User, error)
}
