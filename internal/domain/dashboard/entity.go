// Package dashboard define a projeção somente leitura usada no painel inicial.
package dashboard

import (
	"context"

	"github.com/shopspring/decimal"
)

// Stats agrega contagens do escopo do usuário
type Stats struct {
	TotalAssociations int             `json:"totalAssociations"`
	TotalBlocks       int             `json:"totalBlocks"`
	TotalApartments   int             `json:"totalApartments"`
	TotalExpenses     int             `json:"totalExpenses"`
	PendingPayments   int             `json:"pendingPayments"`
	PendingRepairs    int             `json:"pendingRepairs"`
	OccupancyRate     decimal.Decimal `json:"occupancyRate"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
}

// Scope limita a projeção; campos vazios não filtram
type Scope struct {
	AssociationID string
	BlockID       string
	OwnerID       string
}

// Counts são os números brutos lidos do armazenamento
type Counts struct {
	Associations       int
	Blocks             int
	Apartments         int
	OccupiedApartments int
	Expenses           int
	PendingAllocations int
	OpenRepairs        int
	Revenue            decimal.Decimal
}

// Repository lê as contagens de um escopo
type Repository interface {
	Counts(ctx context.Context, scope Scope) (Counts, error)
}

var hundred = decimal.NewFromInt(100)

// Build converte as contagens em estatísticas; a taxa de ocupação é
// arredondada para uma casa decimal
func Build(c Counts) Stats {
	rate := decimal.Zero
	if c.Apartments > 0 {
		rate = decimal.NewFromInt(int64(c.OccupiedApartments)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(c.Apartments))).
			Round(1)
	}
	return Stats{
		TotalAssociations: c.Associations,
		TotalBlocks:       c.Blocks,
		TotalApartments:   c.Apartments,
		TotalExpenses:     c.Expenses,
		PendingPayments:   c.PendingAllocations,
		PendingRepairs:    c.OpenRepairs,
		OccupancyRate:     rate,
		TotalRevenue:      c.Revenue,
	}
}
