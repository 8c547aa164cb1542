package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/apartment"
	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/domain/user"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"credenciais", user.ErrInvalidCredentials, http.StatusUnauthorized},
		{"inativo", user.ErrInactive, http.StatusUnauthorized},
		{"token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"valor divergente", &domain.AmountMismatchError{}, http.StatusUnprocessableEntity},
		{"leitura", &domain.InvalidReadingError{}, http.StatusUnprocessableEntity},
		{"valor inválido", domain.ErrInvalidAmount, http.StatusUnprocessableEntity},
		{"bloco vazio", fmt.Errorf("distribuir: %w", domain.ErrEmptyBlock), http.StatusUnprocessableEntity},
		{"não encontrado", apartment.ErrNotFound, http.StatusNotFound},
		{"proibido", domain.ErrForbidden, http.StatusForbidden},
		{"já distribuída", domain.ErrAlreadyDistributed, http.StatusConflict},
		{"já quitada", domain.ErrAlreadySettled, http.StatusConflict},
		{"duplicado", apartment.ErrDuplicateNumber, http.StatusConflict},
		{"validação", expense.ErrInvalidCategory, http.StatusBadRequest},
		{"desconhecido", errors.New("conexão perdida"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := statusOf(tc.err)
			assert.Equal(t, tc.want, code)
		})
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	render := func(err error) (*httptest.ResponseRecorder, map[string]interface{}) {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Request = httptest.NewRequest(http.MethodPost, "/payments", nil)
		respondError(ctx, logger.NewNop(), err)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return w, body
	}

	t.Run("valor divergente inclui esperado e recebido", func(t *testing.T) {
		w, body := render(&domain.AmountMismatchError{
			Expected: decimal.RequireFromString("60"),
			Got:      decimal.RequireFromString("59"),
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		fields, ok := body["fields"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, fields, "expected")
		assert.Contains(t, fields, "got")
	})

	t.Run("erro interno não expõe detalhes", func(t *testing.T) {
		w, body := render(errors.New("senha do banco: xyz"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, body, "details")
	})
}
