package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"lunchbox/models"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		models.ErrInvalidKind:                         http.StatusBadRequest,
		models.NewValidationError("message", "empty"): http.StatusBadRequest,
		models.ErrUnauthorized:                        http.StatusUnauthorized,
		models.ErrForbidden:                           http.StatusForbidden,
		fmt.Errorf("lookup: %w", models.ErrNotFound):  http.StatusNotFound,
		fmt.Errorf("%w: timeout", models.ErrStore):    http.StatusInternalServerError,
		errors.New("boom"):                            http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
}
