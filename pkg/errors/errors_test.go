package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"formatted", New(ErrCodeInvalidName, "bad node name: %q", "a\tb"), `INVALID_NAME: bad node name: "a\tb"`},
		{"plain", New(ErrCodeConflict, "diagram d1 already exists"), "CONFLICT: diagram d1 already exists"},
		{"wrapped", Wrap(ErrCodeInvalidFormat, errors.New("unexpected EOF"), "decode diagram"), "INVALID_FORMAT: decode diagram: unexpected EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "store render")

	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeNotFound,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeNotFound, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeNotFound,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidName, "test"),
			expected: ErrCodeInvalidName,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIntegrity(t *testing.T) {
	ie := &IntegrityError{Diagram: "d1", Edge: "a-b", Endpoint: "target", Node: "B"}
	err := Integrity(ie)

	if !Is(err, ErrCodeIntegrity) {
		t.Errorf("Is(err, ErrCodeIntegrity) = false, want true")
	}
	if Is(err, ErrCodeNotFound) {
		t.Errorf("integrity error must not match ErrCodeNotFound")
	}

	var got *IntegrityError
	if !errors.As(err, &got) {
		t.Fatal("errors.As(*IntegrityError) = false, want true")
	}
	if got.Node != "B" || got.Endpoint != "target" {
		t.Errorf("IntegrityError = %+v", got)
	}

	want := `edge "a-b": target node "B" not in diagram d1`
	if ie.Error() != want {
		t.Errorf("Error() = %q, want %q", ie.Error(), want)
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("abc")
	if !Is(err, ErrCodeNotFound) {
		t.Error("Is(NotFound, ErrCodeNotFound) = false, want true")
	}
	if err.Message != "diagram abc not found" {
		t.Errorf("Message = %q", err.Message)
	}
}
