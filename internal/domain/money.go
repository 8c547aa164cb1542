package domain

import (
	"github.com/shopspring/decimal"
)

// MoneyScale é o número de casas decimais aceitas em valores monetários (bani)
const MoneyScale = 2

var (
	hundred = decimal.NewFromInt(100)

	// MaxAmount é o maior valor representável nas colunas NUMERIC(14,2)
	MaxAmount = decimal.RequireFromString("999999999999.99")
)

// ValidateAmount verifica se o valor é positivo, não excede MaxAmount e tem no
// máximo duas casas decimais
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || amount.GreaterThan(MaxAmount) {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return ErrInvalidAmount
	}
	return nil
}

// ToCents converte um valor monetário validado em centavos
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).IntPart()
}

// FromCents converte centavos em valor monetário
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -MoneyScale)
}
