package api

import (
	"errors"
	"net/http"

	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

// StatusForError maps the domain sentinels onto HTTP status codes.
// Anything unclassified is a 500.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrDuplicateIdentity):
		return http.StatusConflict
	case errors.Is(err, types.ErrInvalidCredentials), errors.Is(err, types.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError answers with the status mapped from err. Internal failures get a
// generic message so store details never reach the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusForError(err)
	msg := err.Error()
	switch status {
	case http.StatusInternalServerError:
		msg = "Internal server error"
	case http.StatusUnauthorized:
		if errors.Is(err, types.ErrInvalidCredentials) {
			msg = types.ErrInvalidCredentials.Error()
		} else {
			msg = types.ErrUnauthenticated.Error()
		}
	case http.StatusNotFound:
		msg = types.ErrNotFound.Error()
	}
	ErrorResponse(w, r, status, msg)
}
