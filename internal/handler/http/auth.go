package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/viewtube/user-service/internal/logger"
	"github.com/viewtube/user-service/internal/service"
	"github.com/viewtube/user-service/internal/utils"
	"github.com/viewtube/user-service/models"
)

// refreshTokenCookie is the name of the http-only cookie carrying the
// refresh token. Login sets it, logout reads and clears it.
const refreshTokenCookie = "refreshtoken"

// maxRegisterFormMemory bounds the in-memory part of the multipart parser;
// larger file parts spill to disk.
const maxRegisterFormMemory = 32 << 20

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseMultipartForm(maxRegisterFormMemory); err != nil {
		log.Err(err).Msg("invalid multipart form")
		writeFailure(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	avatarPath, cleanupAvatar, err := saveFormFile(r, "avatar")
	if err != nil {
		log.Err(err).Msg("saving avatar file failed")
		writeFailure(w, http.StatusInternalServerError, "could not accept uploaded file")
		return
	}
	defer cleanupAvatar()

	coverPath, cleanupCover, err := saveFormFile(r, "coverImage")
	if err != nil {
		log.Err(err).Msg("saving cover image file failed")
		writeFailure(w, http.StatusInternalServerError, "could not accept uploaded file")
		return
	}
	defer cleanupCover()

	registeredUser, err := h.services.AuthService.Register(ctx, service.RegisterInput{
		FullName:       r.FormValue("fullname"),
		Email:          r.FormValue("email"),
		Username:       r.FormValue("username"),
		Password:       r.FormValue("password"),
		AvatarPath:     avatarPath,
		CoverImagePath: coverPath,
	})
	if err != nil {
		log.Err(err).Msg("user registration failed")
		writeFailure(w, statusFromError(err), messageFromError(err))
		return
	}

	utils.WriteJSON(w, models.NewSuccessResponse(http.StatusCreated, registeredUser, "User registered Successfully"), http.StatusCreated)
}

// loginRequest is the JSON body of a login call.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeFailure(w, http.StatusBadRequest, "Invalid JSON was passed")
		return
	}

	pair, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		log.Err(err).Msg("user login failed")
		writeFailure(w, statusFromError(err), messageFromError(err))
		return
	}

	log.Debug().Int64("id", pair.RefreshToken.UserID).Msg("user successfully logged in")

	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    pair.RefreshToken.SignedString,
		Path:     "/",
		MaxAge:   cookieMaxAge(pair.RefreshToken),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	utils.WriteJSON(w, models.NewSuccessResponse(http.StatusOK, models.LoginData{
		AccessToken: pair.AccessToken.SignedString,
	}, "User logged In Successfully"), http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var refreshToken string
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}

	if err := h.services.AuthService.Logout(ctx, refreshToken); err != nil {
		log.Err(err).Msg("user logout failed")
		writeFailure(w, statusFromError(err), messageFromError(err))
		return
	}

	// The cookie is cleared even when it was never there; logging out an
	// anonymous caller is a success.
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	utils.WriteJSON(w, models.NewSuccessResponse(http.StatusOK, nil, "User logged Out"), http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		writeFailure(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		return
	}

	currentUser, err := h.services.AuthService.CurrentUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("fetching current user failed")
		writeFailure(w, statusFromError(err), messageFromError(err))
		return
	}

	utils.WriteJSON(w, models.NewSuccessResponse(http.StatusOK, currentUser, "current user fetched successfully"), http.StatusOK)
}

// saveFormFile copies the named multipart file part into a temporary file and
// returns its path together with a cleanup func. A missing part is not an
// error: the path comes back empty and the service layer decides whether the
// field was required.
func saveFormFile(r *http.Request, field string) (string, func(), error) {
	noop := func() {}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", noop, nil
		}
		return "", noop, err
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", noop, err
	}

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", noop, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", noop, err
	}

	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

// cookieMaxAge derives the refresh cookie lifetime from the token's own
// expiry claim so cookie and token always expire together.
func cookieMaxAge(token models.Token) int {
	if token.ExpiresAt == nil {
		return 0
	}
	return int(time.Until(token.ExpiresAt.Time).Seconds())
}
