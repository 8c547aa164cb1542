// Package domain reúne a taxonomia de erros compartilhada pelos agregados.
//
// Os pacotes de cada agregado embrulham estes erros com mensagens próprias,
// de modo que errors.Is funciona tanto com o erro específico
// (apartment.ErrNotFound) quanto com o genérico (domain.ErrNotFound).
package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound indica que a entidade referenciada não existe
	ErrNotFound = errors.New("registro não encontrado")

	// ErrForbidden indica violação de papel ou de escopo de propriedade
	ErrForbidden = errors.New("acesso negado")

	// ErrValidation indica dados de entrada inválidos
	ErrValidation = errors.New("dados inválidos")

	// ErrConflict indica violação de unicidade
	ErrConflict = errors.New("registro duplicado")

	// ErrInvalidAmount indica valor monetário não positivo ou malformado
	ErrInvalidAmount = errors.New("valor monetário inválido")

	// ErrEmptyBlock indica distribuição para um bloco sem apartamentos
	ErrEmptyBlock = errors.New("bloco não possui apartamentos")

	// ErrAlreadyDistributed indica que a despesa já foi distribuída
	ErrAlreadyDistributed = errors.New("despesa já distribuída")

	// ErrAlreadySettled indica pagamento contra uma cota já quitada
	ErrAlreadySettled = errors.New("cota já quitada")

	// ErrAmountMismatch indica valor de pagamento incompatível com a política
	ErrAmountMismatch = errors.New("valor do pagamento não confere")

	// ErrInvalidReading indica leitura de medidor com consumo negativo
	ErrInvalidReading = errors.New("leitura de medidor inválida")
)

// AmountMismatchError detalha o valor esperado e o recebido
type AmountMismatchError struct {
	Expected decimal.Decimal
	Got      decimal.Decimal
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("%s: esperado %s, recebido %s", ErrAmountMismatch, e.Expected.StringFixed(2), e.Got.StringFixed(2))
}

// Is permite errors.Is(err, ErrAmountMismatch)
func (e *AmountMismatchError) Is(target error) bool {
	return target == ErrAmountMismatch
}

// InvalidReadingError detalha as leituras que geraram consumo negativo
type InvalidReadingError struct {
	Current  decimal.Decimal
	Previous decimal.Decimal
}

func (e *InvalidReadingError) Error() string {
	return fmt.Sprintf("%s: leitura atual %s menor que a anterior %s", ErrInvalidReading, e.Current, e.Previous)
}

// Is permite errors.Is(err, ErrInvalidReading)
func (e *InvalidReadingError) Is(target error) bool {
	return target == ErrInvalidReading
}

// Wrap cria um erro específico de agregado que continua comparável com o erro base
func Wrap(base error, message string) error {
	return fmt.Errorf("%s: %w", message, base)
}
