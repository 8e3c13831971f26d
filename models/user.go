package models

import "time"

// User represents a registered account of the platform.
// It carries public identity attributes together with credential data.
// Credential fields must never cross the transport boundary.
type User struct {
	// UserID is the internal unique identifier of the account.
	// Assigned by the database; never exposed via JSON.
	UserID int64 `json:"-"`

	// Username is the unique handle of the account.
	// Stored lowercase; uniqueness is enforced by the database.
	Username string `json:"username"`

	// Email is the unique e-mail address of the account.
	// Stored lowercase; uniqueness is enforced by the database.
	Email string `json:"email"`

	// FullName is the display name shown in UI. Non-sensitive.
	FullName string `json:"fullname"`

	// AvatarURL points to the externally hosted avatar image.
	// Always non-empty once the account exists.
	AvatarURL string `json:"avatar"`

	// CoverImageURL points to the externally hosted cover image.
	// Empty when the user registered without one.
	CoverImageURL string `json:"coverImage"`

	// PasswordHash is the bcrypt hash of the account password.
	// Plaintext is never persisted. Excluded from JSON.
	PasswordHash string `json:"-"`

	// RefreshToken is the currently active refresh token, if any.
	// At most one live value per account; empty means "no active session".
	// Excluded from JSON.
	RefreshToken string `json:"-"`

	// CreatedAt is the timestamp of account creation.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
