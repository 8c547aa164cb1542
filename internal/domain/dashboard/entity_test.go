package dashboard

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	s := Build(Counts{
		Associations:       1,
		Blocks:             2,
		Apartments:         3,
		OccupiedApartments: 2,
		Expenses:           4,
		PendingAllocations: 5,
		OpenRepairs:        1,
		Revenue:            decimal.RequireFromString("250.50"),
	})

	assert.Equal(t, "66.7", s.OccupancyRate.String())
	assert.Equal(t, 3, s.TotalApartments)
	assert.Equal(t, 5, s.PendingPayments)
	assert.Equal(t, "250.5", s.TotalRevenue.String())
}

func TestBuildWithoutApartments(t *testing.T) {
	s := Build(Counts{Revenue: decimal.Zero})
	assert.True(t, s.OccupancyRate.IsZero())
}
