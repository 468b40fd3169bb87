package ingest

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"salesdash_backend/platform/config"
)

// SecretKeyAuthMiddleware validates the X-Secret-Key header against the
// configured shared secret using a constant-time comparison.
func SecretKeyAuthMiddleware(cfg config.TriggerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-Secret-Key")
		expected := cfg.GetWebhookSecretKey()

		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid secret key"})
			return
		}

		c.Next()
	}
}
