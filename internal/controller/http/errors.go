package http

import (
	"errors"
	"net/http"
	"strconv"

	"board/internal/entity"
	"board/internal/usecase"
)

var errInvalidID = errors.New("invalid post id")

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// statusFor maps a usecase error to the HTTP status and the message shown to
// the user. Internal details stay in the logs.
func statusFor(err error) (int, string) {
	var fileErr *usecase.FileWriteError
	switch {
	case errors.Is(err, entity.ErrPostNotFound):
		return http.StatusNotFound, "Post not found"
	case errors.Is(err, errInvalidID):
		return http.StatusBadRequest, "Invalid post id"
	case errors.Is(err, usecase.ErrInvalidPost):
		return http.StatusBadRequest, "Title and content are required"
	case errors.As(err, &fileErr):
		return http.StatusInternalServerError, "Failed to store the attached file"
	default:
		return http.StatusInternalServerError, "Something went wrong"
	}
}
