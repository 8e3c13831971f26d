package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/viewtube/user-service/internal/config"
	"github.com/viewtube/user-service/internal/logger"
	"github.com/viewtube/user-service/internal/media"
	"github.com/viewtube/user-service/internal/store"
	"github.com/viewtube/user-service/internal/utils"
	"github.com/viewtube/user-service/models"
)

// authService is the concrete implementation of AuthService.
// It orchestrates the account state machine (anonymous → authenticated →
// anonymous) using a UserRepository for persistence, a media Uploader for
// avatar hosting, bcrypt for password hashing, and HMAC-SHA256 JWTs for
// session tokens.
type authService struct {
	// userRepository is the data-access layer used to create and look up
	// accounts and to persist refresh-token changes.
	userRepository store.UserRepository

	// uploader stores avatar and cover images with the external media host.
	uploader media.Uploader

	// tokenSignKey is the process-wide HMAC secret used to sign and verify
	// JWT tokens. Injected at construction, never read from ambient state.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// accessTokenDuration controls how long an access token remains valid.
	accessTokenDuration time.Duration

	// refreshTokenDuration controls how long a refresh token remains valid.
	// Matches the max-age of the refresh cookie set by the transport layer.
	refreshTokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repository
// and media uploader, with security parameters taken from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, uploader media.Uploader, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:       userRepository,
		uploader:             uploader,
		tokenSignKey:         cfg.TokenSignKey,
		tokenIssuer:          cfg.TokenIssuer,
		accessTokenDuration:  cfg.AccessTokenDuration,
		refreshTokenDuration: cfg.RefreshTokenDuration,
		logger:               logger,
	}
}

// Register creates a new account.
//
// The flow mirrors the account invariants: all four identity fields must be
// non-blank after trimming, username and email are folded to lowercase
// before the uniqueness check, the avatar is mandatory and must upload
// successfully before anything is persisted, and the response is re-read
// through the sanitized projection so credential fields can never leak.
//
// Returns the sanitized account or:
//   - ErrInvalidDataProvided if a required field is blank.
//   - store.ErrUserAlreadyExists if username or email is taken (either by
//     the pre-check or by the unique index on insert).
//   - ErrAvatarFileRequired if no avatar file reference was supplied.
//   - media.ErrUploadFailed if the media host rejected the avatar.
//   - ErrCreatedUserNotFound if the created record cannot be re-fetched.
func (a *authService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	log := logger.FromContext(ctx)

	fullName := strings.TrimSpace(in.FullName)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.ToLower(strings.TrimSpace(in.Username))
	password := strings.TrimSpace(in.Password)

	if fullName == "" || email == "" || username == "" || password == "" {
		log.Error().Str("username", username).Str("email", email).Msg("registration with blank required fields")
		return models.User{}, ErrInvalidDataProvided
	}

	// Friendly early duplicate check. The unique indexes remain the source
	// of truth; a race past this lookup surfaces on CreateUser.
	_, err := a.userRepository.FindByUsernameOrEmail(ctx, username, email)
	if err == nil {
		log.Error().Str("username", username).Str("email", email).Msg("username or email already taken")
		return models.User{}, store.ErrUserAlreadyExists
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		log.Err(err).Msg("uniqueness pre-check failed")
		return models.User{}, fmt.Errorf("uniqueness pre-check failed: %w", err)
	}

	if in.AvatarPath == "" {
		return models.User{}, ErrAvatarFileRequired
	}

	avatarURL, err := a.uploader.Upload(ctx, in.AvatarPath)
	if err != nil {
		log.Err(err).Msg("avatar upload failed")
		return models.User{}, fmt.Errorf("avatar upload failed: %w", err)
	}

	var coverImageURL string
	if in.CoverImagePath != "" {
		coverImageURL, err = a.uploader.Upload(ctx, in.CoverImagePath)
		if err != nil {
			log.Err(err).Msg("cover image upload failed")
			return models.User{}, fmt.Errorf("cover image upload failed: %w", err)
		}
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	created, err := a.userRepository.CreateUser(ctx, models.User{
		Username:      username,
		Email:         email,
		FullName:      fullName,
		PasswordHash:  passwordHash,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
	})
	if err != nil {
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	// Re-fetch through the sanitized projection so the returned record
	// cannot carry credential fields.
	sanitized, err := a.userRepository.FindByID(ctx, created.UserID)
	if err != nil {
		log.Err(err).Int64("id", created.UserID).Msg("created user could not be re-fetched")
		return models.User{}, ErrCreatedUserNotFound
	}

	return sanitized, nil
}

// Login authenticates an existing account and opens a session.
//
// It looks the account up by e-mail, verifies the password against the
// stored bcrypt hash, mints an access/refresh token pair, and persists the
// refresh token — overwriting any previous value, so an account holds at
// most one live session token.
//
// Returns the token pair or:
//   - ErrInvalidDataProvided if email or password is blank.
//   - store.ErrUserNotFound if no account is registered under the e-mail.
//   - ErrWrongPassword if the password does not match.
func (a *authService) Login(ctx context.Context, email, password string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		log.Error().Msg("login with blank email or password")
		return models.TokenPair{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.TokenPair{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.VerifyPassword(password, foundUser.PasswordHash) {
		log.Error().Int64("id", foundUser.UserID).Str("email", email).Msg("wrong password")
		return models.TokenPair{}, ErrWrongPassword
	}

	accessToken, err := utils.GenerateAccessToken(a.tokenIssuer, foundUser, a.accessTokenDuration, a.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refreshToken, err := utils.GenerateRefreshToken(a.tokenIssuer, foundUser.UserID, a.refreshTokenDuration, a.tokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	// Targeted token update; the rest of the record is left untouched.
	if err := a.userRepository.UpdateRefreshToken(ctx, foundUser.UserID, refreshToken.SignedString); err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("persisting refresh token failed")
		return models.TokenPair{}, fmt.Errorf("persisting refresh token failed: %w", err)
	}

	return models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout ends the session identified by refreshToken.
//
// An empty token, an unknown token, and a token whose account has vanished
// are all treated as success: logout is idempotent and never reveals whether
// a session existed.
func (a *authService) Logout(ctx context.Context, refreshToken string) error {
	log := logger.FromContext(ctx)

	if refreshToken == "" {
		return nil
	}

	foundUser, err := a.userRepository.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil
		}
		log.Err(err).Msg("user search by refresh token failed")
		return fmt.Errorf("user search by refresh token failed: %w", err)
	}

	if err := a.userRepository.UpdateRefreshToken(ctx, foundUser.UserID, ""); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil
		}
		log.Err(err).Int64("id", foundUser.UserID).Msg("clearing refresh token failed")
		return fmt.Errorf("clearing refresh token failed: %w", err)
	}

	return nil
}

// Authenticate validates and parses a raw access token string.
//
// Any validation failure (expired, bad signature, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors — and cannot leak which failure occurred.
func (a *authService) Authenticate(ctx context.Context, accessToken string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(accessToken, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// CurrentUser returns the sanitized projection of the account identified by
// userID. Used by the authenticated profile endpoint.
func (a *authService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return foundUser, nil
}
