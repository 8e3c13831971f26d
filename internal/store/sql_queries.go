package store

import (
	sq "github.com/Masterminds/squirrel"
)

// psql is the shared statement builder configured for PostgreSQL
// dollar-numbered placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// userColumns is the full column set of the users table, in scan order.
var userColumns = []string{
	"user_id",
	"username",
	"email",
	"full_name",
	"password_hash",
	"avatar_url",
	"cover_image_url",
	"refresh_token",
	"created_at",
}

// sanitizedUserColumns excludes credential fields. Reads through this set can
// never leak the password hash or the stored refresh token.
var sanitizedUserColumns = []string{
	"user_id",
	"username",
	"email",
	"full_name",
	"avatar_url",
	"cover_image_url",
	"created_at",
}

const createUser = `INSERT INTO users (username, email, full_name, password_hash, avatar_url, cover_image_url)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING user_id, username, email, full_name, password_hash, avatar_url, cover_image_url, refresh_token, created_at;`

func selectUserWhere(pred any, args ...any) sq.SelectBuilder {
	return psql.Select(userColumns...).From("users").Where(pred, args...)
}

func selectSanitizedUserWhere(pred any, args ...any) sq.SelectBuilder {
	return psql.Select(sanitizedUserColumns...).From("users").Where(pred, args...)
}

// updateRefreshToken builds the targeted single-column UPDATE used on login
// and logout. A nil value stores SQL NULL, clearing the session.
func updateRefreshToken(userID int64, token any) sq.UpdateBuilder {
	return psql.Update("users").
		Set("refresh_token", token).
		Where(sq.Eq{"user_id": userID})
}
