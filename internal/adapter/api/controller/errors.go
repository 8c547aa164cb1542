package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/user"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

// statusOf traduz um erro do domínio para o status HTTP e a mensagem curta
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, user.ErrInvalidCredentials), errors.Is(err, user.ErrInactive):
		return http.StatusUnauthorized, "Credenciais inválidas"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrExpiredToken), errors.Is(err, auth.ErrInvalidClaims):
		return http.StatusUnauthorized, "Token inválido"
	case errors.Is(err, domain.ErrAmountMismatch):
		return http.StatusUnprocessableEntity, "Valor do pagamento não confere"
	case errors.Is(err, domain.ErrInvalidReading):
		return http.StatusUnprocessableEntity, "Leitura inválida"
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusUnprocessableEntity, "Valor inválido"
	case errors.Is(err, domain.ErrEmptyBlock):
		return http.StatusUnprocessableEntity, "Bloco sem apartamentos"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Registro não encontrado"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Acesso negado"
	case errors.Is(err, domain.ErrAlreadyDistributed),
		errors.Is(err, domain.ErrAlreadySettled),
		errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "Conflito"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "Dados inválidos"
	}
	return http.StatusInternalServerError, "Erro interno"
}

// respondError escreve o envelope de erro correspondente a err
func respondError(ctx *gin.Context, log logger.Logger, err error) {
	code, message := statusOf(err)
	resp := dto.NewErrorResponse(code, message, err.Error())

	var mismatch *domain.AmountMismatchError
	var reading *domain.InvalidReadingError
	switch {
	case errors.As(err, &mismatch):
		resp.Fields = gin.H{"expected": mismatch.Expected, "got": mismatch.Got}
	case errors.As(err, &reading):
		resp.Fields = gin.H{"current": reading.Current, "previous": reading.Previous}
	}

	if code == http.StatusInternalServerError {
		log.Error("falha ao processar requisição",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		// Detalhes internos não são expostos
		resp.Details = ""
	}
	ctx.JSON(code, resp)
}

// badRequest responde a uma falha de binding do corpo ou dos parâmetros
func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
}

// principal obtém o Principal autenticado; responde 401 se ausente
func principal(ctx *gin.Context) (auth.Principal, bool) {
	p, ok := auth.GetPrincipal(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Autenticação requerida", ""))
	}
	return p, ok
}

func orNop(log logger.Logger) logger.Logger {
	if log == nil {
		return logger.NewNop()
	}
	return log
}
