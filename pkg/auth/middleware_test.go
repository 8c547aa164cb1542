package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-condominio/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers map[string]*user.User

func (s stubUsers) FindByID(_ context.Context, id string) (*user.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func newRouter(svc *JWTService, users UserLoader, roles ...user.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{JWTAuthMiddleware(svc, users)}
	if len(roles) > 0 {
		handlers = append(handlers, RoleAuthMiddleware(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"userId": p.UserID, "blockId": p.BlockID})
	})
	r.GET("/me", handlers...)
	return r
}

func doRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc, _ := NewJWTService("segredo", time.Hour)
	u, err := user.NewUser("locatar@bloc.ro", "Ion", "Pop", "parola123", user.RoleTenant)
	require.NoError(t, err)
	u.Scope(user.RoleTenant, "assoc-1", "block-7")
	users := stubUsers{u.ID: u}

	token, err := svc.GenerateToken(u)
	require.NoError(t, err)

	t.Run("sem cabeçalho", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doRequest(newRouter(svc, users), "").Code)
	})

	t.Run("formato inválido", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doRequest(newRouter(svc, users), "Token "+token).Code)
	})

	t.Run("token válido carrega escopo do banco", func(t *testing.T) {
		w := doRequest(newRouter(svc, users), "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "block-7")
	})

	t.Run("papel não autorizado", func(t *testing.T) {
		w := doRequest(newRouter(svc, users, user.RoleAdminAssociation), "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("usuário removido", func(t *testing.T) {
		w := doRequest(newRouter(svc, stubUsers{}), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("usuário inativo", func(t *testing.T) {
		inactive := *u
		inactive.Status = user.StatusInactive
		w := doRequest(newRouter(svc, stubUsers{u.ID: &inactive}), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
