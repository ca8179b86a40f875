package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	assert.Equal(t, "validation error: bad body", (&ErrValidation{Message: "bad body"}).Error())
	assert.Equal(t, "validation error: limit - too big", (&ErrValidation{Field: "limit", Message: "too big"}).Error())
}

func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "company not found: Acme", (&ErrNotFound{Resource: "company", Name: "Acme"}).Error())
}

func TestErrUnavailable(t *testing.T) {
	assert.Equal(t, "database is not configured", (&ErrUnavailable{Component: "database"}).Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &ErrValidation{Message: "x"}, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("decode: %w", &ErrValidation{Message: "x"}), http.StatusBadRequest},
		{"not found", &ErrNotFound{Resource: "company", Name: "Acme"}, http.StatusNotFound},
		{"unavailable", &ErrUnavailable{Component: "database"}, http.StatusServiceUnavailable},
		{"too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
