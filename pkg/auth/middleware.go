package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-condominio/internal/domain/user"
)

const principalKey = "auth_principal"

// UserLoader carrega o usuário dono do token
type UserLoader interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
}

// JWTAuthMiddleware valida o token Bearer, recarrega o usuário e guarda o
// Principal no contexto do gin
func JWTAuthMiddleware(jwtService *JWTService, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Obter o token do cabeçalho Authorization
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Autenticação requerida", "O cabeçalho Authorization não foi fornecido")
			return
		}

		// Verificar o formato "Bearer <token>"
		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
			abortUnauthorized(c, "Formato de token inválido", "Use o formato 'Bearer <token>'")
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(tokenParts[1]))
		if err != nil {
			message := "Token inválido"
			if errors.Is(err, ErrExpiredToken) {
				message = "Token expirado"
			}
			abortUnauthorized(c, message, err.Error())
			return
		}

		// Papel e escopo vêm sempre do banco, nunca do token
		u, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				abortUnauthorized(c, "Usuário não encontrado", "")
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
				http.StatusInternalServerError,
				"Erro ao carregar usuário",
				err.Error(),
			))
			return
		}
		if !u.IsActive() {
			abortUnauthorized(c, "Usuário inativo", "")
			return
		}

		c.Set(principalKey, PrincipalFromUser(u))
		c.Next()
	}
}

// RoleAuthMiddleware cria um middleware para verificação de papel/função do usuário
func RoleAuthMiddleware(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			abortUnauthorized(c, "Autenticação requerida", "")
			return
		}

		if !p.HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				http.StatusForbidden,
				"Acesso negado",
				"Você não tem permissão para acessar este recurso",
			))
			return
		}

		c.Next()
	}
}

// GetPrincipal obtém o Principal autenticado do contexto
func GetPrincipal(c *gin.Context) (Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// SetPrincipal grava o Principal no contexto; usado pelo middleware e em testes
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

func abortUnauthorized(c *gin.Context, message, details string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
		http.StatusUnauthorized,
		message,
		details,
	))
}
