package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/viewtube/user-service/internal/logger"
	"github.com/viewtube/user-service/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new account record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists]. The
//     unique indexes on username and email are the authoritative duplicate
//     check; a race past the pre-registration lookup still lands here.
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.Username, user.Email, user.FullName, user.PasswordHash, user.AvatarURL, user.CoverImageURL)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUserAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindByEmail retrieves the account registered under the given e-mail.
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByEmail", selectUserWhere(sq.Eq{"email": email}))
}

// FindByUsernameOrEmail retrieves any account whose username or e-mail
// matches the given values. Used for the pre-registration uniqueness check.
// Returns [ErrUserNotFound] when neither value is taken.
func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (models.User, error) {
	pred := sq.Or{
		sq.Eq{"username": username},
		sq.Eq{"email": email},
	}
	return r.findOne(ctx, "*userRepository.FindByUsernameOrEmail", selectUserWhere(pred))
}

// FindByRefreshToken retrieves the account currently holding the given
// refresh token. Returns [ErrUserNotFound] when no session matches, which
// makes repeated logouts with the same token a storage no-op.
func (r *userRepository) FindByRefreshToken(ctx context.Context, refreshToken string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByRefreshToken", selectUserWhere(sq.Eq{"refresh_token": refreshToken}))
}

// FindByID retrieves a sanitized projection of the account: the SELECT never
// touches the password hash or refresh token columns.
// Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) FindByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectSanitizedUserWhere(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindByID").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&found.UserID, &found.Username, &found.Email, &found.FullName,
		&found.AvatarURL, &found.CoverImageURL, &found.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindByID").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// UpdateRefreshToken replaces the stored refresh token of the account with a
// targeted single-column UPDATE; no other field is revalidated or rewritten.
// An empty token stores NULL, ending the session.
//
// Returns [ErrUserNotFound] when the account does not exist.
func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID int64, refreshToken string) error {
	log := logger.FromContext(ctx)

	var token any
	if refreshToken != "" {
		token = refreshToken
	}

	query, args, err := updateRefreshToken(userID, token).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateRefreshToken").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateRefreshToken").Msg("error executing update")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// findOne builds and executes a single-row SELECT over the full column set.
func (r *userRepository) findOne(ctx context.Context, caller string, builder sq.SelectBuilder) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", caller).Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	found, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", caller).Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// scanUser reads a full users row. The nullable refresh_token column scans
// through sql.NullString; absent means "no active session".
func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var refreshToken sql.NullString

	err := row.Scan(&user.UserID, &user.Username, &user.Email, &user.FullName,
		&user.PasswordHash, &user.AvatarURL, &user.CoverImageURL, &refreshToken, &user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}

	user.RefreshToken = refreshToken.String
	return user, nil
}
