package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "segments",
			err:  New(ErrCodeInvalidConfig, "segments must be positive, got %d", 0),
			want: "INVALID_CONFIG: segments must be positive, got 0",
		},
		{
			name: "missing config file",
			err:  Wrap(ErrCodeInvalidConfig, fs.ErrNotExist, "read config %s", "weave.toml"),
			want: "INVALID_CONFIG: read config weave.toml: file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	_, cause := strconv.ParseFloat("soon", 64)
	err := Wrap(ErrCodeInvalidInput, cause, "query parameter t=%q is not a number", "soon")

	if !errors.Is(err, strconv.ErrSyntax) {
		t.Error("wrapped parse error lost strconv.ErrSyntax")
	}
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) || numErr.Num != "soon" {
		t.Errorf("errors.As(*strconv.NumError) = %v", numErr)
	}
}

func TestCodeThroughWrapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{
			name: "time rejected directly",
			err:  ValidateTime(-1),
			code: ErrCodeInvalidTime,
		},
		{
			name: "time rejected under fmt wrapping",
			err:  fmt.Errorf("frame 3: %w", ValidateTime(-1)),
			code: ErrCodeInvalidTime,
		},
		{
			name: "outer code wins",
			err:  Wrap(ErrCodeInternal, New(ErrCodeSessionNotFound, "session abc is closed"), "render"),
			code: ErrCodeInternal,
		},
		{
			name: "plain error",
			err:  errors.New("disk full"),
			code: "",
		},
		{
			name: "nil",
			err:  nil,
			code: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if Is(tt.err, ErrCodeUnsupported) {
				t.Error("Is(UNSUPPORTED) = true")
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "session not found",
			err:  New(ErrCodeSessionNotFound, "session %s not found", "abc"),
			want: "session abc not found",
		},
		{
			name: "wrapped under fmt",
			err:  fmt.Errorf("serve: %w", New(ErrCodeInvalidPreset, "unknown preset %q", "neon")),
			want: `unknown preset "neon"`,
		},
		{
			name: "plain error",
			err:  errors.New("listen tcp :8080: address already in use"),
			want: "listen tcp :8080: address already in use",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
