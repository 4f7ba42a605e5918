package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with ID",
			err:      &NotFoundError{Resource: "entry", ID: "pickaxe"},
			wantMsg:  "entry not found: pickaxe",
			wantBase: ErrNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "macro"},
			wantMsg:  "macro not found",
			wantBase: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("disk error")
		err := &NotFoundError{Resource: "file", ID: "refs.bib", Err: underlyingErr}
		if got := err.Error(); got != "file not found: refs.bib" {
			t.Errorf("Error() = %q, want %q", got, "file not found: refs.bib")
		}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestArgumentError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ArgumentError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with operation",
			err:      &ArgumentError{Operation: "append", Message: "element is nil"},
			wantMsg:  "append: element is nil",
			wantBase: ErrInvalidInput,
		},
		{
			name:     "without operation",
			err:      &ArgumentError{Message: "element is nil"},
			wantMsg:  "invalid argument: element is nil",
			wantBase: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}
}

func TestIOError(t *testing.T) {
	underlyingErr := fmt.Errorf("permission denied")
	tests := []struct {
		name    string
		err     *IOError
		wantMsg string
	}{
		{
			name:    "with path",
			err:     &IOError{Operation: "read", Path: "/tmp/refs.bib", Err: underlyingErr},
			wantMsg: "failed to read /tmp/refs.bib: permission denied",
		},
		{
			name:    "without path",
			err:     &IOError{Operation: "write", Err: underlyingErr},
			wantMsg: "failed to write: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); got != underlyingErr {
				t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with path",
			err:      &ParseError{Format: "BibTeX", Path: "refs.bib", Message: "unbalanced braces"},
			wantMsg:  "failed to parse BibTeX at refs.bib: unbalanced braces",
			wantBase: ErrInvalidInput,
		},
		{
			name:     "without path",
			err:      &ParseError{Format: "XML", Message: "unexpected EOF"},
			wantMsg:  "failed to parse XML: unexpected EOF",
			wantBase: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}
}

func TestUnsupportedError(t *testing.T) {
	err := &UnsupportedError{Feature: "format", Reason: "unknown extension .docx"}
	if got := err.Error(); got != "unsupported format: unknown extension .docx" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Error("expected ErrUnsupported in chain")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	base := fmt.Errorf("base error")
	wrapped := Wrap(base, "loading bibliography")
	if wrapped.Error() != "loading bibliography: base error" {
		t.Errorf("Wrap() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match base via errors.Is")
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	base := fmt.Errorf("base error")
	wrapped := Wrapf(base, "entry %q", "pickaxe")
	if wrapped.Error() != `entry "pickaxe": base error` {
		t.Errorf("Wrapf() = %q", wrapped.Error())
	}
}

func TestHelperConstructors(t *testing.T) {
	nf := NewNotFound("entry", "missing")
	if nf.Resource != "entry" || nf.ID != "missing" {
		t.Errorf("NewNotFound fields = %+v", nf)
	}

	arg := NewArgument("add", "not an element")
	if arg.Operation != "add" || arg.Message != "not an element" {
		t.Errorf("NewArgument fields = %+v", arg)
	}

	io := NewIO("open", "/x", fmt.Errorf("boom"))
	if io.Operation != "open" || io.Path != "/x" {
		t.Errorf("NewIO fields = %+v", io)
	}

	pe := NewParse("BibTeX", "", "bad token")
	if pe.Format != "BibTeX" || pe.Message != "bad token" {
		t.Errorf("NewParse fields = %+v", pe)
	}
}
