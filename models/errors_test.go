package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestWikiError_ErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *WikiError
		want string
	}{
		{
			"without wrapped error",
			NewWikiError(ErrCodeAPI, "maxlag: server busy", nil),
			"API_ERROR: maxlag: server busy",
		},
		{
			"with wrapped error",
			NewWikiError(ErrCodeTransport, "query request failed", errors.New("connection refused")),
			"TRANSPORT_FAILED: query request failed: connection refused",
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

func TestWikiError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	we := NewWikiError(ErrCodeMalformed, "decode", inner)

	if !errors.Is(we, inner) {
		t.Error("errors.Is should reach the wrapped error")
	}
	if we.Unwrap() != inner {
		t.Errorf("Unwrap() = %v, want %v", we.Unwrap(), inner)
	}
}

func TestWikiError_UnwrapNil(t *testing.T) {
	we := NewWikiError(ErrCodeInvalidInput, "empty", nil)
	if we.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want nil", we.Unwrap())
	}
}

func TestHasCode(t *testing.T) {
	base := NewWikiError(ErrCodeRedirect, "page is a redirect", nil)

	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{"direct match", base, ErrCodeRedirect, true},
		{"wrapped match", fmt.Errorf("fetch: %w", base), ErrCodeRedirect, true},
		{"code mismatch", base, ErrCodeTransport, false},
		{"plain error", errors.New("plain"), ErrCodeRedirect, false},
		{"nil error", nil, ErrCodeRedirect, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCode(tt.err, tt.code); got != tt.want {
				t.Errorf("HasCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFetchResult_OK(t *testing.T) {
	ok := Success("Main Page", "<p>hi</p>")
	if !ok.OK() {
		t.Error("Success result should be OK")
	}
	if ok.Title != "Main Page" || ok.HTML != "<p>hi</p>" {
		t.Errorf("unexpected success payload: %+v", ok)
	}

	bad := Failure("Broken", errors.New("nope"))
	if bad.OK() {
		t.Error("Failure result should not be OK")
	}
	if bad.Err == nil {
		t.Error("Failure should carry its error")
	}
}
