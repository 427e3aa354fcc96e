package httpx

import (
	"errors"
	"net/http"

	"github.com/corkboard/corkboard/internal/shared"
)

// ErrValidation indicates a request body that failed validation.
var ErrValidation = errors.New("validation failed")

// RespondError maps domain errors to structured HTTP responses. Every
// authentication and authorization failure becomes a 4xx envelope; nothing
// in this path is allowed to surface as an unhandled internal error.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Message(w, http.StatusNotFound, err.Error())
	case errors.Is(err, shared.ErrTokenInvalid),
		errors.Is(err, shared.ErrUserNotFound),
		errors.Is(err, shared.ErrUnauthenticated),
		errors.Is(err, shared.ErrInvalidCredentials):
		Message(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, shared.ErrForbidden):
		Message(w, http.StatusForbidden, err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Message(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrValidation):
		Message(w, http.StatusBadRequest, err.Error())
	default:
		Message(w, http.StatusInternalServerError, "internal error")
	}
}
