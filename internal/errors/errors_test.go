package errors

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewError("bad dates").Mark(ErrValidation), http.StatusBadRequest},
		{"not found", NewError("no room").Mark(ErrNotFound), http.StatusNotFound},
		{"duplicate", NewError("code taken").Mark(ErrAlreadyExists), http.StatusConflict},
		{"forbidden", NewError("not yours").Mark(ErrPermissionDenied), http.StatusForbidden},
		{"wrapped", errors.Wrap(NewError("gone").Mark(ErrNotFound), "loading coupon"), http.StatusNotFound},
		{"unmarked", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromErr(tt.err))
		})
	}
}

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(NewError("consumed").Mark(ErrConflict)))
	assert.True(t, IsConflict(NewError("pair exists").Mark(ErrAlreadyExists)))
	assert.False(t, IsConflict(NewError("bad").Mark(ErrValidation)))
	assert.False(t, IsConflict(nil))
}

func TestHintSurvivesMarking(t *testing.T) {
	err := NewError("coupon code taken").
		WithHint("A coupon with this code already exists").
		Mark(ErrAlreadyExists)

	assert.True(t, IsAlreadyExists(err))
	assert.Contains(t, errors.FlattenHints(err), "A coupon with this code already exists")
}
