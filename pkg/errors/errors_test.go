package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := WithCode(ErrorTypeNotFound, http.StatusNotFound, "submission 12345 not found")
	assert.Equal(t, "not_found error (code 404): submission 12345 not found", err.Error())

	err = New(ErrorTypeParsing, "missing download link")
	assert.Equal(t, "parsing error: missing download link", err.Error())
}

func TestIs(t *testing.T) {
	authErr := New(ErrorTypeAuth, "bad cookies")

	assert.True(t, Is(authErr, ErrorTypeAuth))
	assert.False(t, Is(authErr, ErrorTypeNotFound))
	assert.False(t, Is(nil, ErrorTypeAuth))
	assert.False(t, Is(fmt.Errorf("plain error"), ErrorTypeAuth))

	// classification survives wrapping
	wrapped := fmt.Errorf("search failed: %w", authErr)
	assert.True(t, IsAuth(wrapped))
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"auth", New(ErrorTypeAuth, "x"), IsAuth, true},
		{"not found", New(ErrorTypeNotFound, "x"), IsNotFound, true},
		{"network", New(ErrorTypeNetwork, "x"), IsNetwork, true},
		{"parse", New(ErrorTypeParsing, "x"), IsParse, true},
		{"mismatch", New(ErrorTypeNetwork, "x"), IsAuth, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}

func TestFromStatusCode(t *testing.T) {
	tests := []struct {
		code int
		want ErrorType
	}{
		{401, ErrorTypeAuth},
		{403, ErrorTypeAuth},
		{404, ErrorTypeNotFound},
		{500, ErrorTypeServer},
		{502, ErrorTypeServer},
		{418, ErrorTypeUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FromStatusCode(tt.code), "status %d", tt.code)
	}
}
