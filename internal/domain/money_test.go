package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateAmount(t *testing.T) {
	valid := []string{"0.01", "10", "123.45", "999999999999.99"}
	for _, s := range valid {
		assert.NoError(t, ValidateAmount(decimal.RequireFromString(s)), s)
	}

	invalid := []string{"0", "-1", "1.005", "1000000000000", "100000000000000000"}
	for _, s := range invalid {
		assert.ErrorIs(t, ValidateAmount(decimal.RequireFromString(s)), ErrInvalidAmount, s)
	}
}

func TestCentsRoundTripAtLimit(t *testing.T) {
	cents := ToCents(MaxAmount)

	assert.Equal(t, int64(99999999999999), cents)
	assert.True(t, FromCents(cents).Equal(MaxAmount))
}
