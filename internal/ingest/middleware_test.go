package ingest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type staticTriggerConfig struct{ secret string }

func (c staticTriggerConfig) GetWebhookSecretKey() string { return c.secret }

func newTriggerTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/sync", SecretKeyAuthMiddleware(staticTriggerConfig{secret: secret}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestSecretKeyAuthMiddleware(t *testing.T) {
	engine := newTriggerTestRouter("top-secret")

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid key", "top-secret", http.StatusOK},
		{"wrong key", "guess", http.StatusUnauthorized},
		{"missing key", "", http.StatusUnauthorized},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/sync", nil)
			if c.header != "" {
				req.Header.Set("X-Secret-Key", c.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			if rec.Code != c.want {
				t.Fatalf("status = %d, want %d", rec.Code, c.want)
			}
		})
	}
}
