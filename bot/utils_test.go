package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		balance  int64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{123456, "123,456"},
		{1000000, "1,000,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatBalance(tt.balance))
	}
}

func TestIsDigits(t *testing.T) {
	assert.True(t, isDigits("100"))
	assert.True(t, isDigits("0"))

	assert.False(t, isDigits(""))
	assert.False(t, isDigits("-100"))
	assert.False(t, isDigits("+100"))
	assert.False(t, isDigits("10.5"))
	assert.False(t, isDigits("1,000"))
	assert.False(t, isDigits("abc"))
	assert.False(t, isDigits("10 "))
}
