package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config", NewConfigError("invalid value %d for flag %s", 0, "--workers"), "invalid value 0 for flag --workers"},
		{"validation", ValidationError{Field: "workers", Message: "must be at least 1"}, `validation error for "workers": must be at least 1`},
		{"mismatch", MismatchError{Size: 1000, Operation: "sort_parallel", Detail: "outputs differ at index 3"}, "result mismatch for sort_parallel at size 1000: outputs differ at index 3"},
		{"timeout", TimeoutError{Operation: "benchmark", Limit: time.Second}, `operation "benchmark" timed out after 1s`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "ctx") != nil {
		t.Error("WrapError(nil) should be nil")
	}
	base := ValidationError{Field: "budget", Message: "too small"}
	wrapped := WrapError(base, "loading %s", "config.yaml")
	if !strings.HasPrefix(wrapped.Error(), "loading config.yaml: ") {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
	var ve ValidationError
	if !errors.As(wrapped, &ve) || ve.Field != "budget" {
		t.Error("errors.As should find the ValidationError")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{context.Canceled, true},
		{context.DeadlineExceeded, true},
		{fmt.Errorf("size 1000: %w", context.Canceled), true},
		{errors.New("other"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.want {
			t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"timeout type", TimeoutError{Operation: "x", Limit: time.Second}, ExitErrorTimeout},
		{"deadline", fmt.Errorf("run: %w", context.DeadlineExceeded), ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"mismatch", WrapError(MismatchError{Size: 1}, "verify"), ExitErrorMismatch},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"validation", ValidationError{Field: "f"}, ExitErrorConfig},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	code := HandleError(MismatchError{Size: 10, Operation: "search_parallel", Detail: "index 3 holds 7"}, &buf)
	if code != ExitErrorMismatch {
		t.Errorf("code = %d, want %d", code, ExitErrorMismatch)
	}
	if !strings.Contains(buf.String(), "CRITICAL ERROR") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	if HandleError(nil, &buf) != ExitSuccess || buf.Len() != 0 {
		t.Error("nil error should print nothing and return ExitSuccess")
	}
}
