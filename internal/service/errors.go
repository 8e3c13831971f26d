package service

import "errors"

// Sentinel errors returned by the auth service. The HTTP boundary maps each
// of them onto a status code; match with [errors.Is].
var (
	// ErrInvalidDataProvided is returned when a required field is missing
	// or blank after trimming.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrAvatarFileRequired is returned when a registration request carries
	// no avatar file. The avatar is mandatory; the cover image is not.
	ErrAvatarFileRequired = errors.New("avatar file is required")

	// ErrWrongPassword is returned when credential verification fails.
	ErrWrongPassword = errors.New("wrong password")

	// ErrTokenIsExpiredOrInvalid is returned for every access-token
	// verification failure. Signature and expiry failures are deliberately
	// collapsed so callers cannot distinguish which occurred.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrCreatedUserNotFound is returned when the freshly created account
	// cannot be re-fetched. This is a post-condition violation, never an
	// expected outcome.
	ErrCreatedUserNotFound = errors.New("created user could not be retrieved")

	// ErrTokenCreationFailed is returned when JWT generation fails.
	ErrTokenCreationFailed = errors.New("token creation failed")
)
