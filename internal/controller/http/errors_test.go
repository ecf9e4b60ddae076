package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"board/internal/entity"
	"board/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{fmt.Errorf("view: %w", entity.ErrPostNotFound), http.StatusNotFound, "Post not found"},
		{errInvalidID, http.StatusBadRequest, "Invalid post id"},
		{usecase.ErrInvalidPost, http.StatusBadRequest, "Title and content are required"},
		{&usecase.FileWriteError{Name: "a", Err: errors.New("boom")}, http.StatusInternalServerError, "Failed to store the attached file"},
		{errors.New("connection refused"), http.StatusInternalServerError, "Something went wrong"},
	}
	for _, tc := range cases {
		status, message := statusFor(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.message, message, tc.err.Error())
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	assert.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, raw := range []string{"", "0", "-3", "x1"} {
		_, err := parseID(raw)
		assert.ErrorIs(t, err, errInvalidID, raw)
	}
}
