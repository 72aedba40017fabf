package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/pkg/jwthelper"
)

const testSigningKey = "test-signing-key"

func newAuthTestRouter(t *testing.T, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handlers := append([]gin.HandlerFunc{NewAuthenticator(testSigningKey).VerifyJWT()}, extra...)
	handlers = append(handlers, func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"user_id": ctx.MustGet(ContextKeyUserID),
			"role":    ctx.MustGet(ContextKeyUserRole),
		})
	})
	router.GET("/protected", handlers...)

	return router
}

func TestVerifyJWT(t *testing.T) {
	token, err := jwthelper.GenerateToken(domain.User{ID: 42, Role: domain.RoleAdmin}, testSigningKey)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"no bearer prefix", token, http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"bad token", "Bearer not.a.token", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	router := newAuthTestRouter(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestVerifyJWT_SetsIdentity(t *testing.T) {
	token, err := jwthelper.GenerateToken(domain.User{ID: 42, Role: domain.RoleAuxiliary}, testSigningKey)
	require.NoError(t, err)

	router := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id": 42, "role": "auxiliary"}`, rec.Body.String())
}

func TestRequireRoles(t *testing.T) {
	adminToken, err := jwthelper.GenerateToken(domain.User{ID: 1, Role: domain.RoleAdmin}, testSigningKey)
	require.NoError(t, err)
	teacherToken, err := jwthelper.GenerateToken(domain.User{ID: 7, Role: domain.RoleTeacher}, testSigningKey)
	require.NoError(t, err)

	router := newAuthTestRouter(t, RequireRoles(domain.RoleAdmin, domain.RoleAuxiliary))

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"allowed role", adminToken, http.StatusOK},
		{"forbidden role", teacherToken, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireRoles_WithoutAuthentication(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", RequireRoles(domain.RoleAdmin), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
