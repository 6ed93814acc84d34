package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewAppError(ErrNotFound, "vendor registration not found"), http.StatusNotFound},
		{"permission denied", NewAppError(ErrPermissionDenied, "not your transaction"), http.StatusForbidden},
		{"failed precondition", NewAppError(ErrFailedPrecondition, "already approved"), http.StatusConflict},
		{"invalid argument", NewAppError(ErrInvalidArgument, "bad rate"), http.StatusBadRequest},
		{"untagged error", errors.New("mongo timeout"), http.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("approval failed: %w", NewAppError(ErrNotFound, "gone")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(AppErrorf(ErrInvalidArgument, "bad amount %v", -1)); got != ErrInvalidArgument {
		t.Errorf("KindOf() = %v, want invalid-argument", got)
	}
	if got := KindOf(errors.New("plain")); got != ErrInternal {
		t.Errorf("KindOf() untagged = %v, want internal", got)
	}
}
