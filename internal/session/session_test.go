package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires a cookie-backed session store and endpoints that
// drive every manager transition, so tests can exercise the state
// machine over real requests.
func newTestRouter(m *Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions(CookieName, cookie.NewStore([]byte("test-secret"))))

	r.POST("/auth", func(c *gin.Context) {
		if err := m.Authenticate(c, 42, "alice"); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	r.POST("/begin", func(c *gin.Context) {
		err := m.BeginRegistration(c, PendingRegistration{
			Username:     "bob",
			PasswordHash: "$2a$12$hash",
			OTPSecret:    "JBSWY3DPEHPK3PXP",
		})
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	r.POST("/clear", func(c *gin.Context) {
		if err := m.Clear(c); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	r.GET("/state", func(c *gin.Context) {
		userID, username, authed := m.Identity(c)
		pending, hasPending := m.Pending(c)
		c.JSON(http.StatusOK, gin.H{
			"authed":           authed,
			"user_id":          userID,
			"username":         username,
			"pending":          hasPending,
			"pending_username": pending.Username,
		})
	})
	return r
}

// do performs a request, carrying over cookies from a previous response
func do(t *testing.T, r *gin.Engine, method, path string, prev *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if prev != nil {
		for _, c := range prev.Result().Cookies() {
			req.AddCookie(c)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w
}

func TestIdentity_Unauthenticated(t *testing.T) {
	r := newTestRouter(NewManager())

	w := do(t, r, http.MethodGet, "/state", nil)
	assert.Contains(t, w.Body.String(), `"authed":false`)
	assert.Contains(t, w.Body.String(), `"pending":false`)
}

func TestAuthenticate(t *testing.T) {
	r := newTestRouter(NewManager())

	w := do(t, r, http.MethodPost, "/auth", nil)
	w = do(t, r, http.MethodGet, "/state", w)

	assert.Contains(t, w.Body.String(), `"authed":true`)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.Contains(t, w.Body.String(), `"pending":false`)
}

func TestBeginRegistration(t *testing.T) {
	r := newTestRouter(NewManager())

	w := do(t, r, http.MethodPost, "/begin", nil)
	w = do(t, r, http.MethodGet, "/state", w)

	assert.Contains(t, w.Body.String(), `"pending":true`)
	assert.Contains(t, w.Body.String(), `"pending_username":"bob"`)
	assert.Contains(t, w.Body.String(), `"authed":false`)
}

func TestAuthenticate_DiscardsPending(t *testing.T) {
	r := newTestRouter(NewManager())

	w := do(t, r, http.MethodPost, "/begin", nil)
	w = do(t, r, http.MethodPost, "/auth", w)
	w = do(t, r, http.MethodGet, "/state", w)

	assert.Contains(t, w.Body.String(), `"authed":true`)
	assert.Contains(t, w.Body.String(), `"pending":false`)
}

func TestBeginRegistration_DiscardsAuthenticated(t *testing.T) {
	r := newTestRouter(NewManager())

	w := do(t, r, http.MethodPost, "/auth", nil)
	w = do(t, r, http.MethodPost, "/begin", w)
	w = do(t, r, http.MethodGet, "/state", w)

	assert.Contains(t, w.Body.String(), `"authed":false`)
	assert.Contains(t, w.Body.String(), `"pending":true`)
}

func TestClear(t *testing.T) {
	r := newTestRouter(NewManager())

	w := do(t, r, http.MethodPost, "/auth", nil)
	w = do(t, r, http.MethodPost, "/clear", w)
	w = do(t, r, http.MethodGet, "/state", w)

	assert.Contains(t, w.Body.String(), `"authed":false`)
	assert.Contains(t, w.Body.String(), `"pending":false`)
}
