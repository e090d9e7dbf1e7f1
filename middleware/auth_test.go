package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MIA1kl/threads-api/utils"
)

// whoamiRouter dereferences the claims without a nil check: anything past the
// middleware is guaranteed to carry them.
func whoamiRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/whoami", func(c *gin.Context) {
		user := utils.GetUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": user.UserID})
	})
	return r
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := whoamiRouter()

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "tokenwithoutscheme"},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddlewareSetsClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := whoamiRouter()

	access, _, err := utils.GenerateTokenPair(42)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf("%d", 42))
}
