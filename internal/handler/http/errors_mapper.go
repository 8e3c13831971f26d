package http

import (
	"errors"
	"net/http"

	"github.com/viewtube/user-service/internal/media"
	"github.com/viewtube/user-service/internal/service"
	"github.com/viewtube/user-service/internal/store"
	"github.com/viewtube/user-service/internal/utils"
	"github.com/viewtube/user-service/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrAvatarFileRequired:      http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrCreatedUserNotFound:     http.StatusInternalServerError,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrUserAlreadyExists: http.StatusConflict,
	store.ErrUserNotFound:      http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,

	media.ErrUploadFailed: http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError picks the client-facing message for a service error.
// Known sentinels surface their own text; anything else is reduced to the
// generic status text so internals never leak into responses.
func messageFromError(err error) string {
	for target := range errorStatusMap {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return http.StatusText(http.StatusInternalServerError)
}

// writeFailure writes the uniform failure envelope with the given status.
func writeFailure(w http.ResponseWriter, statusCode int, message string) {
	utils.WriteJSON(w, models.NewFailureResponse(statusCode, message), statusCode)
}
