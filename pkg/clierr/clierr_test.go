package clierr

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *Error
		wantMsg string
	}{
		{
			name:    "simple error message",
			err:     New(Validation, "invalid input", nil),
			wantMsg: "invalid input",
		},
		{
			name:    "error with underlying error",
			err:     New(Remote, "request failed", errors.New("network timeout")),
			wantMsg: "request failed",
		},
		{
			name:    "empty message",
			err:     New(Internal, "", nil),
			wantMsg: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", got, tt.wantMsg)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying")
	if got := New(Validation, "test", nil).Unwrap(); got != nil {
		t.Errorf("Unwrap() with nil underlying = %v, want nil", got)
	}
	if got := New(Remote, "test", underlying).Unwrap(); got != underlying {
		t.Errorf("Unwrap() = %v, want %v", got, underlying)
	}
}

func TestError_ErrorsIsAs(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	cliErr := New(Auth, "session expired", underlyingErr)

	if !errors.Is(cliErr, underlyingErr) {
		t.Error("errors.Is should find underlying error")
	}

	var target *Error
	if !errors.As(cliErr, &target) {
		t.Error("errors.As should find Error type")
	}
	if target.Type != Auth {
		t.Errorf("errors.As Type = %v, want %v", target.Type, Auth)
	}
}

func TestError_Types(t *testing.T) {
	types := []Type{Validation, NotFound, Auth, Remote, Internal}
	expected := []string{"validation", "not_found", "auth", "remote", "internal"}

	for i, typ := range types {
		if string(typ) != expected[i] {
			t.Errorf("Type constant = %v, want %v", typ, expected[i])
		}
	}
}

func TestError_ErrorInterface(t *testing.T) {
	var _ error = (*Error)(nil)

	var e error = New(Validation, "test message", nil)
	if e.Error() != "test message" {
		t.Errorf("Error interface Error() = %v, want %v", e.Error(), "test message")
	}
}
