package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NotFound("patrol", "pt-1"), http.StatusNotFound},
		{Denied("nope"), http.StatusForbidden},
		{ErrBadCredentials, http.StatusUnauthorized},
		{ErrAlreadyOnDuty, http.StatusBadRequest},
		{ErrAlreadyAssigned, http.StatusBadRequest},
		{Invalid("bad"), http.StatusBadRequest},
		{ErrRateLimited, http.StatusTooManyRequests},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HTTPStatus(c.err), c.err.Error())
	}
}

func TestIsMatchesCode(t *testing.T) {
	custom := ErrNotOnDuty.WithMessage("officer %s is off", "of-1")
	wrapped := fmt.Errorf("end duty: %w", custom)

	assert.True(t, errors.Is(wrapped, ErrNotOnDuty))
	assert.False(t, errors.Is(wrapped, ErrAlreadyOnDuty))
	assert.Equal(t, "officer of-1 is off", From(wrapped).Message)
}

func TestFromWrapsUnknown(t *testing.T) {
	assert.Nil(t, From(nil))

	cause := errors.New("dial tcp 10.0.0.5:3306: connection refused")
	e := From(fmt.Errorf("load officer: %w", cause))
	assert.Equal(t, KindInternal, e.Kind)
	assert.Equal(t, "internal server error", e.Message)
	assert.NotContains(t, e.Message, "10.0.0.5")
	assert.ErrorIs(t, e, cause)
	assert.Contains(t, e.Error(), "connection refused")
}
