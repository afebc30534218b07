package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBet_OptionByNumber(t *testing.T) {
	bet := &Bet{Option1: "Red", Option2: "Blue"}

	assert.Equal(t, "Red", bet.OptionByNumber(1))
	assert.Equal(t, "Blue", bet.OptionByNumber(2))
	assert.Equal(t, "", bet.OptionByNumber(0))
	assert.Equal(t, "", bet.OptionByNumber(3))
}

func TestBet_HasOption(t *testing.T) {
	bet := &Bet{Option1: "Red", Option2: "Blue"}

	assert.True(t, bet.HasOption("Red"))
	assert.True(t, bet.HasOption("Blue"))
	assert.False(t, bet.HasOption("Green"))
	assert.False(t, bet.HasOption(""))
}
