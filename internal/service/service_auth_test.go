// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viewtube Authors

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewtube/user-service/internal/config"
	"github.com/viewtube/user-service/internal/logger"
	"github.com/viewtube/user-service/internal/mock"
	"github.com/viewtube/user-service/internal/service"
	"github.com/viewtube/user-service/internal/store"
	"github.com/viewtube/user-service/internal/utils"
	"github.com/viewtube/user-service/models"
	"go.uber.org/mock/gomock"
)

var errStorage = errors.New("storage error")

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:         "test-sign-key",
		TokenIssuer:          "user-service",
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: 7 * 24 * time.Hour,
	}
}

// newTestAuthService wires an auth service to gomock collaborators.
func newTestAuthService(t *testing.T, ctrl *gomock.Controller) (service.AuthService, *mock.MockUserRepository, *mock.MockUploader) {
	t.Helper()
	mockUsers := mock.NewMockUserRepository(ctrl)
	mockUploader := mock.NewMockUploader(ctrl)

	svc := service.NewAuthService(mockUsers, mockUploader, testAppConfig(), logger.Nop())

	return svc, mockUsers, mockUploader
}

func validRegisterInput() service.RegisterInput {
	return service.RegisterInput{
		FullName:       "Jane Doe",
		Email:          "jane@example.com",
		Username:       "jdoe",
		Password:       "s3cret-pass",
		AvatarPath:     "/tmp/avatar.png",
		CoverImagePath: "/tmp/cover.jpg",
	}
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockUploader := newTestAuthService(t, ctrl)
	ctx := context.Background()

	in := validRegisterInput()
	sanitized := models.User{
		UserID:        7,
		Username:      "jdoe",
		Email:         "jane@example.com",
		FullName:      "Jane Doe",
		AvatarURL:     "https://media.example.com/a.png",
		CoverImageURL: "https://media.example.com/c.jpg",
	}

	gomock.InOrder(
		mockUsers.EXPECT().FindByUsernameOrEmail(ctx, "jdoe", "jane@example.com").Return(models.User{}, store.ErrUserNotFound),
		mockUploader.EXPECT().Upload(ctx, in.AvatarPath).Return(sanitized.AvatarURL, nil),
		mockUploader.EXPECT().Upload(ctx, in.CoverImagePath).Return(sanitized.CoverImageURL, nil),
		mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, "jdoe", u.Username)
				assert.Equal(t, "jane@example.com", u.Email)
				assert.Equal(t, "Jane Doe", u.FullName)
				assert.Equal(t, sanitized.AvatarURL, u.AvatarURL)
				assert.Equal(t, sanitized.CoverImageURL, u.CoverImageURL)
				assert.True(t, utils.VerifyPassword(in.Password, u.PasswordHash), "stored hash must verify against the original password")
				u.UserID = 7
				return u, nil
			},
		),
		mockUsers.EXPECT().FindByID(ctx, int64(7)).Return(sanitized, nil),
	)

	got, err := svc.Register(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, sanitized, got)
	assert.Empty(t, got.PasswordHash, "sanitized projection must not carry the password hash")
	assert.Empty(t, got.RefreshToken, "sanitized projection must not carry the refresh token")
}

func TestAuthService_Register_NormalizesUsernameAndEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockUploader := newTestAuthService(t, ctrl)
	ctx := context.Background()

	in := validRegisterInput()
	in.Username = "  JDoe "
	in.Email = " Jane@Example.COM "
	in.CoverImagePath = ""

	mockUsers.EXPECT().FindByUsernameOrEmail(ctx, "jdoe", "jane@example.com").Return(models.User{}, store.ErrUserNotFound)
	mockUploader.EXPECT().Upload(ctx, in.AvatarPath).Return("https://media.example.com/a.png", nil)
	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "jdoe", u.Username)
			assert.Equal(t, "jane@example.com", u.Email)
			assert.Empty(t, u.CoverImageURL)
			u.UserID = 8
			return u, nil
		},
	)
	mockUsers.EXPECT().FindByID(ctx, int64(8)).Return(models.User{UserID: 8, Username: "jdoe"}, nil)

	_, err := svc.Register(ctx, in)
	require.NoError(t, err)
}

func TestAuthService_Register_BlankFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*service.RegisterInput)
	}{
		{"blank full name", func(in *service.RegisterInput) { in.FullName = "   " }},
		{"blank email", func(in *service.RegisterInput) { in.Email = "" }},
		{"blank username", func(in *service.RegisterInput) { in.Username = "\t" }},
		{"blank password", func(in *service.RegisterInput) { in.Password = "  " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRegisterInput()
			tt.mutate(&in)

			_, err := svc.Register(ctx, in)
			require.ErrorIs(t, err, service.ErrInvalidDataProvided)
		})
	}
}

func TestAuthService_Register_DuplicateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindByUsernameOrEmail(ctx, "jdoe", "jane@example.com").Return(models.User{UserID: 3}, nil)

	_, err := svc.Register(ctx, validRegisterInput())
	require.ErrorIs(t, err, store.ErrUserAlreadyExists)
}

func TestAuthService_Register_PreCheckError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindByUsernameOrEmail(ctx, "jdoe", "jane@example.com").Return(models.User{}, errStorage)

	_, err := svc.Register(ctx, validRegisterInput())
	require.ErrorIs(t, err, errStorage)
}

func TestAuthService_Register_AvatarRequired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	in := validRegisterInput()
	in.AvatarPath = ""

	mockUsers.EXPECT().FindByUsernameOrEmail(ctx, "jdoe", "jane@example.com").Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Register(ctx, in)
	require.ErrorIs(t, err, service.ErrAvatarFileRequired)
}

func TestAuthService_Register_AvatarUploadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockUploader := newTestAuthService(t, ctrl)
	ctx := context.Background()

	in := validRegisterInput()

	mockUsers.EXPECT().FindByUsernameOrEmail(ctx, "jdoe", "jane@example.com").Return(models.User{}, store.ErrUserNotFound)
	mockUploader.EXPECT().Upload(ctx, in.AvatarPath).Return("", errStorage)

	_, err := svc.Register(ctx, in)
	require.ErrorIs(t, err, errStorage)
}

func TestAuthService_Register_InsertRace_SurfacesDuplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockUploader := newTestAuthService(t, ctrl)
	ctx := context.Background()

	in := validRegisterInput()
	in.CoverImagePath = ""

	// The pre-check passes, but a concurrent registration wins the insert.
	// The unique index violation must still surface as ErrUserAlreadyExists.
	mockUsers.EXPECT().FindByUsernameOrEmail(ctx, "jdoe", "jane@example.com").Return(models.User{}, store.ErrUserNotFound)
	mockUploader.EXPECT().Upload(ctx, in.AvatarPath).Return("https://media.example.com/a.png", nil)
	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrUserAlreadyExists)

	_, err := svc.Register(ctx, in)
	require.ErrorIs(t, err, store.ErrUserAlreadyExists)
}

func TestAuthService_Register_RefetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockUploader := newTestAuthService(t, ctrl)
	ctx := context.Background()

	in := validRegisterInput()
	in.CoverImagePath = ""

	mockUsers.EXPECT().FindByUsernameOrEmail(ctx, "jdoe", "jane@example.com").Return(models.User{}, store.ErrUserNotFound)
	mockUploader.EXPECT().Upload(ctx, in.AvatarPath).Return("https://media.example.com/a.png", nil)
	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{UserID: 9}, nil)
	mockUsers.EXPECT().FindByID(ctx, int64(9)).Return(models.User{}, errStorage)

	_, err := svc.Register(ctx, in)
	require.ErrorIs(t, err, service.ErrCreatedUserNotFound)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	passwordHash, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)

	stored := models.User{
		UserID:       7,
		Username:     "jdoe",
		Email:        "jane@example.com",
		PasswordHash: passwordHash,
	}

	var persistedToken string
	gomock.InOrder(
		mockUsers.EXPECT().FindByEmail(ctx, "jane@example.com").Return(stored, nil),
		mockUsers.EXPECT().UpdateRefreshToken(ctx, int64(7), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, token string) error {
				persistedToken = token
				return nil
			},
		),
	)

	pair, err := svc.Login(ctx, "jane@example.com", "s3cret-pass")
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken.SignedString)
	assert.NotEmpty(t, pair.RefreshToken.SignedString)
	assert.Equal(t, pair.RefreshToken.SignedString, persistedToken, "the minted refresh token must be the one persisted")

	// Access token must verify with the same key and issuer it was minted with.
	parsed, err := utils.ValidateAndParseJWTToken(pair.AccessToken.SignedString, "test-sign-key", "user-service")
	require.NoError(t, err)
	assert.Equal(t, int64(7), parsed.UserID)
	assert.Equal(t, "jdoe", parsed.Username)
	assert.Equal(t, "jane@example.com", parsed.Email)
}

func TestAuthService_Login_NormalizesEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	passwordHash, err := utils.HashPassword("pass")
	require.NoError(t, err)

	mockUsers.EXPECT().FindByEmail(ctx, "jane@example.com").Return(models.User{UserID: 7, PasswordHash: passwordHash}, nil)
	mockUsers.EXPECT().UpdateRefreshToken(ctx, int64(7), gomock.Any()).Return(nil)

	_, err = svc.Login(ctx, "  Jane@Example.COM ", "pass")
	require.NoError(t, err)
}

func TestAuthService_Login_BlankCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	_, err := svc.Login(ctx, "", "pass")
	require.ErrorIs(t, err, service.ErrInvalidDataProvided)

	_, err = svc.Login(ctx, "jane@example.com", "")
	require.ErrorIs(t, err, service.ErrInvalidDataProvided)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.Login(ctx, "ghost@example.com", "pass")
	require.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	passwordHash, err := utils.HashPassword("right-pass")
	require.NoError(t, err)

	mockUsers.EXPECT().FindByEmail(ctx, "jane@example.com").Return(models.User{UserID: 7, PasswordHash: passwordHash}, nil)

	_, err = svc.Login(ctx, "jane@example.com", "wrong-pass")
	require.ErrorIs(t, err, service.ErrWrongPassword)
}

func TestAuthService_Login_PersistTokenError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	passwordHash, err := utils.HashPassword("pass")
	require.NoError(t, err)

	mockUsers.EXPECT().FindByEmail(ctx, "jane@example.com").Return(models.User{UserID: 7, PasswordHash: passwordHash}, nil)
	mockUsers.EXPECT().UpdateRefreshToken(ctx, int64(7), gomock.Any()).Return(errStorage)

	_, err = svc.Login(ctx, "jane@example.com", "pass")
	require.ErrorIs(t, err, errStorage)
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestAuthService_Logout_EmptyToken_NoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repository expectations: an empty token must not hit the store.
	svc, _, _ := newTestAuthService(t, ctrl)

	err := svc.Logout(context.Background(), "")
	require.NoError(t, err)
}

func TestAuthService_Logout_UnknownToken_NoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindByRefreshToken(ctx, "unknown-token").Return(models.User{}, store.ErrUserNotFound)

	err := svc.Logout(ctx, "unknown-token")
	require.NoError(t, err)
}

func TestAuthService_Logout_ClearsStoredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockUsers.EXPECT().FindByRefreshToken(ctx, "live-token").Return(models.User{UserID: 7}, nil),
		mockUsers.EXPECT().UpdateRefreshToken(ctx, int64(7), "").Return(nil),
	)

	err := svc.Logout(ctx, "live-token")
	require.NoError(t, err)
}

func TestAuthService_Logout_AccountVanished_NoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindByRefreshToken(ctx, "live-token").Return(models.User{UserID: 7}, nil)
	mockUsers.EXPECT().UpdateRefreshToken(ctx, int64(7), "").Return(store.ErrUserNotFound)

	err := svc.Logout(ctx, "live-token")
	require.NoError(t, err)
}

func TestAuthService_Logout_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindByRefreshToken(ctx, "live-token").Return(models.User{}, errStorage)

	err := svc.Logout(ctx, "live-token")
	require.ErrorIs(t, err, errStorage)
}

// ── Authenticate ─────────────────────────────────────────────────────────────

func TestAuthService_Authenticate_ValidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthService(t, ctrl)

	user := models.User{UserID: 7, Username: "jdoe", Email: "jane@example.com"}
	token, err := utils.GenerateAccessToken("user-service", user, time.Hour, "test-sign-key")
	require.NoError(t, err)

	parsed, err := svc.Authenticate(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(7), parsed.UserID)
	assert.Equal(t, "jdoe", parsed.Username)
}

func TestAuthService_Authenticate_ExpiredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthService(t, ctrl)

	token, err := utils.GenerateAccessToken("user-service", models.User{UserID: 7}, -time.Minute, "test-sign-key")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token.SignedString)
	require.ErrorIs(t, err, service.ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_Authenticate_WrongSignKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthService(t, ctrl)

	token, err := utils.GenerateAccessToken("user-service", models.User{UserID: 7}, time.Hour, "other-sign-key")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token.SignedString)
	require.ErrorIs(t, err, service.ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_Authenticate_WrongIssuer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthService(t, ctrl)

	token, err := utils.GenerateAccessToken("other-service", models.User{UserID: 7}, time.Hour, "test-sign-key")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token.SignedString)
	require.ErrorIs(t, err, service.ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_Authenticate_Garbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthService(t, ctrl)

	_, err := svc.Authenticate(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, service.ErrTokenIsExpiredOrInvalid)
}

// ── CurrentUser ──────────────────────────────────────────────────────────────

func TestAuthService_CurrentUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	expected := models.User{UserID: 7, Username: "jdoe", Email: "jane@example.com"}
	mockUsers.EXPECT().FindByID(ctx, int64(7)).Return(expected, nil)

	got, err := svc.CurrentUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestAuthService_CurrentUser_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindByID(ctx, int64(42)).Return(models.User{}, store.ErrUserNotFound)

	_, err := svc.CurrentUser(ctx, 42)
	require.ErrorIs(t, err, store.ErrUserNotFound)
}
