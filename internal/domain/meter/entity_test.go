package meter

import (
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestComputeConsumption(t *testing.T) {
	c, err := ComputeConsumption(decimal.NewFromInt(150), ptr("100"))
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.True(t, c.Equal(decimal.NewFromInt(50)))

	c, err = ComputeConsumption(decimal.NewFromInt(150), nil)
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = ComputeConsumption(decimal.NewFromInt(100), ptr("100"))
	require.NoError(t, err)
	assert.True(t, c.IsZero())

	_, err = ComputeConsumption(decimal.NewFromInt(90), ptr("100"))
	require.ErrorIs(t, err, domain.ErrInvalidReading)
	var invalid *domain.InvalidReadingError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "100", invalid.Previous.String())
}

func TestNewReading(t *testing.T) {
	now := time.Now()

	r, err := NewReading("apt-1", TypeWater, decimal.RequireFromString("12.5"), ptr("10.25"), now, "u")
	require.NoError(t, err)
	require.NotNil(t, r.Consumption)
	assert.Equal(t, "2.25", r.Consumption.String())

	_, err = NewReading("apt-1", Type("STEAM"), decimal.NewFromInt(1), nil, now, "u")
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = NewReading("apt-1", TypeGas, decimal.NewFromInt(-1), nil, now, "u")
	assert.ErrorIs(t, err, ErrNegativeReading)

	_, err = NewReading("apt-1", TypeGas, decimal.NewFromInt(5), ptr("9"), now, "u")
	assert.ErrorIs(t, err, domain.ErrInvalidReading)

	_, err = NewReading("", TypeGas, decimal.NewFromInt(5), nil, now, "u")
	assert.ErrorIs(t, err, ErrEmptyApartmentID)
}
