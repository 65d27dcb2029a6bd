package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestError(t *testing.T) {
	missing := Wrap(ErrCodeFrameNotFound, fs.ErrNotExist, "frame %d in %s", 7, "_output")
	tests := []struct {
		name    string
		err     *Error
		want    string
		user    string
		wrapped error
	}{
		{
			name: "new",
			err:  New(ErrCodeInvalidFormat, "unsupported print format %q", "gif"),
			want: `INVALID_FORMAT: unsupported print format "gif"`,
			user: `unsupported print format "gif"`,
		},
		{
			name:    "wrap",
			err:     missing,
			want:    "FRAME_NOT_FOUND: frame 7 in _output: file does not exist",
			user:    "frame 7 in _output",
			wrapped: fs.ErrNotExist,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if got := UserMessage(tt.err); got != tt.user {
				t.Errorf("UserMessage() = %q, want %q", got, tt.user)
			}
			if errors.Unwrap(tt.err) != tt.wrapped {
				t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(tt.err), tt.wrapped)
			}
		})
	}

	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
	if !errors.Is(missing, fs.ErrNotExist) {
		t.Error("wrapped cause is not reachable with errors.Is")
	}
}

func TestCodes(t *testing.T) {
	frameErr := New(ErrCodeInvalidFrame, "frame 3: mx = 0")
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"coded", frameErr, ErrCodeInvalidFrame},
		{"fmt wrapped", fmt.Errorf("printframes: %w", frameErr), ErrCodeInvalidFrame},
		{"outermost code wins", Wrap(ErrCodeToolFailed, frameErr, "pdflatex"), ErrCodeToolFailed},
		{"missing tool", fmt.Errorf("render: %w", &ToolError{Tool: "rsvg-convert"}), ErrCodeToolMissing},
		{"failed tool", &ToolError{Tool: "pdflatex", Err: errors.New("exit status 1")}, ErrCodeToolFailed},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
			if tt.want != "" && !Is(tt.err, tt.want) {
				t.Errorf("Is(err, %s) = false", tt.want)
			}
			if Is(tt.err, ErrCodeInternal) {
				t.Error("Is matched an unrelated code")
			}
		})
	}
}

func TestToolError(t *testing.T) {
	missing := &ToolError{Tool: "pdflatex", Hint: "  apt install texlive-latex-base"}
	if want := "pdflatex not found. Install with:\n  apt install texlive-latex-base"; missing.Error() != want {
		t.Errorf("Error() = %q, want %q", missing.Error(), want)
	}

	exit := errors.New("exit status 1")
	failed := &ToolError{Tool: "rsvg-convert", Stderr: "bad svg", Err: exit}
	if want := "rsvg-convert: exit status 1: bad svg"; failed.Error() != want {
		t.Errorf("Error() = %q, want %q", failed.Error(), want)
	}
	if !errors.Is(failed, exit) {
		t.Error("process error is not reachable with errors.Is")
	}

	quiet := &ToolError{Tool: "pdflatex", Err: exit}
	if want := "pdflatex: exit status 1"; quiet.Error() != want {
		t.Errorf("Error() = %q, want %q", quiet.Error(), want)
	}
}
