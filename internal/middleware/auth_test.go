package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// stubVerifier accepts exactly one token.
type stubVerifier struct {
	token string
	email string
}

func (s *stubVerifier) Verify(token string) (string, error) {
	if token == s.token {
		return s.email, nil
	}
	return "", errors.New("invalid token")
}

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(&stubVerifier{token: "good-token", email: "user@example.com"}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": VerifiedEmail(c)})
	})
	return router
}

func TestRequireAuth_MissingHeader_Unauthorized(t *testing.T) {
	t.Parallel()

	router := newAuthTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_MalformedHeader_Unauthorized(t *testing.T) {
	t.Parallel()

	router := newAuthTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "good-token") // missing Bearer prefix
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_InvalidToken_Unauthorized(t *testing.T) {
	t.Parallel()

	router := newAuthTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_ValidToken_StoresEmail(t *testing.T) {
	t.Parallel()

	router := newAuthTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"email":"user@example.com"}` {
		t.Errorf("unexpected body: %s", body)
	}
}
