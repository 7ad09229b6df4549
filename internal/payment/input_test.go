package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCardNumber(t *testing.T) {
	tests := map[string]string{
		"":                   "",
		"4111":               "4111",
		"41111":              "4111 1",
		"4111111111111111":   "4111 1111 1111 1111",
		"4111 1111 11111111": "4111 1111 1111 1111",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatCardNumber(in), in)
	}
}

func TestFormatCardExpiry(t *testing.T) {
	tests := map[string]string{
		"1":      "1",
		"12":     "12/",
		"1227":   "12/27",
		"12/2":   "12/2",
		"12/275": "12/27",
		"ab12c7": "12/7",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatCardExpiry(in), in)
	}
}
