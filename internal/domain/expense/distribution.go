package expense

import (
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/apartment"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPolicy = domain.Wrap(domain.ErrValidation, "política de distribuição inválida")
	ErrInvalidArea   = domain.Wrap(domain.ErrValidation, "apartamento com área não positiva não pode receber cota proporcional")
	ErrShareTooSmall = domain.Wrap(domain.ErrInvalidAmount, "valor insuficiente para gerar uma cota positiva por apartamento")
)

// Policy define como o valor da despesa é repartido entre os apartamentos
type Policy string

const (
	// PolicyEqualSplit divide o valor em partes iguais
	PolicyEqualSplit Policy = "EQUAL_SPLIT"
	// PolicyAreaWeighted divide o valor proporcionalmente à área
	PolicyAreaWeighted Policy = "AREA_WEIGHTED"
)

// ParsePolicy valida uma política; vazio retorna a política padrão informada
func ParsePolicy(s string, fallback Policy) (Policy, error) {
	switch Policy(strings.ToUpper(strings.TrimSpace(s))) {
	case "":
		return fallback, nil
	case PolicyEqualSplit:
		return PolicyEqualSplit, nil
	case PolicyAreaWeighted:
		return PolicyAreaWeighted, nil
	}
	return "", ErrInvalidPolicy
}

// Distribute reparte a despesa em uma cota por apartamento.
//
// Os apartamentos são processados em ordem crescente de ID e o resto do
// arredondamento (em bani) vai inteiro para o primeiro, de modo que a soma
// das cotas é exatamente o valor da despesa. Se alguma cota resultar em zero
// a distribuição é recusada com ErrShareTooSmall.
func Distribute(e *Expense, apartments []*apartment.Apartment, policy Policy) ([]*ApartmentExpense, error) {
	if err := domain.ValidateAmount(e.Amount); err != nil {
		return nil, err
	}
	if len(apartments) == 0 {
		return nil, domain.ErrEmptyBlock
	}

	ordered := make([]*apartment.Apartment, len(apartments))
	copy(ordered, apartments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})

	total := domain.ToCents(e.Amount)

	var shares []int64
	var err error
	switch policy {
	case PolicyEqualSplit:
		shares = equalShares(total, len(ordered))
	case PolicyAreaWeighted:
		shares, err = areaShares(total, ordered)
	default:
		err = ErrInvalidPolicy
	}
	if err != nil {
		return nil, err
	}
	for _, share := range shares {
		if share <= 0 {
			return nil, ErrShareTooSmall
		}
	}

	now := time.Now()
	allocations := make([]*ApartmentExpense, len(ordered))
	for i, a := range ordered {
		allocations[i] = newApartmentExpense(e, a.ID, domain.FromCents(shares[i]), now)
	}
	return allocations, nil
}

func equalShares(total int64, n int) []int64 {
	base := total / int64(n)
	shares := make([]int64, n)
	for i := range shares {
		shares[i] = base
	}
	shares[0] += total - base*int64(n)
	return shares
}

func areaShares(total int64, ordered []*apartment.Apartment) ([]int64, error) {
	// Escala comum para transformar as áreas em inteiros
	var scale int32
	for _, a := range ordered {
		if !a.Area.IsPositive() {
			return nil, ErrInvalidArea
		}
		if exp := -a.Area.Exponent(); exp > scale {
			scale = exp
		}
	}

	weights := make([]*big.Int, len(ordered))
	sum := new(big.Int)
	for i, a := range ordered {
		weights[i] = a.Area.Shift(scale).BigInt()
		sum.Add(sum, weights[i])
	}

	bigTotal := big.NewInt(total)
	shares := make([]int64, len(ordered))
	var allocated int64
	for i, w := range weights {
		share := new(big.Int).Mul(bigTotal, w)
		share.Quo(share, sum)
		shares[i] = share.Int64()
		allocated += shares[i]
	}
	shares[0] += total - allocated
	return shares, nil
}

// Sum soma os valores de um conjunto de cotas
func Sum(allocations []*ApartmentExpense) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allocations {
		total = total.Add(a.Amount)
	}
	return total
}
