package formatting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		name     string
		value    int
		expected string
	}{
		{name: "zero is pence", value: 0, expected: "0p"},
		{name: "negative clamps to zero", value: -250, expected: "0p"},
		{name: "sub pound stays in pence", value: 85, expected: "85p"},
		{name: "boundary pence", value: 99, expected: "99p"},
		{name: "exact pound", value: 100, expected: "£1.00"},
		{name: "pounds and pence", value: 120, expected: "£1.20"},
		{name: "pence padded to two digits", value: 405, expected: "£4.05"},
		{name: "large amount", value: 123456, expected: "£1234.56"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Money(tt.value))
		})
	}
}

func TestMoneyWithCustomSymbols(t *testing.T) {
	assert.Equal(t, "$2.50", MoneyWith(250, "$", "c"))
	assert.Equal(t, "99c", MoneyWith(99, "$", "c"))
	assert.Equal(t, "0c", MoneyWith(0, "$", "c"))
}
