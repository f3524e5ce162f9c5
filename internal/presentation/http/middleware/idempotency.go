package middleware

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peakers/pos-api/internal/domain/entity"
	"github.com/peakers/pos-api/internal/domain/repository"
)

const (
	// IdempotencyKeyHeader is the HTTP header carrying the client's key
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long a processed key is replayed
	IdempotencyKeyTTL = 24 * time.Hour
)

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyRequired rejects POSTs without an Idempotency-Key header and
// replays the stored response for keys already processed. A retried
// checkout therefore never commits a second sale.
func IdempotencyRequired(repo repository.IdempotencyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(400, gin.H{
				"success": false,
				"message": "Idempotency-Key header is required for this request",
			})
			return
		}

		userID, ok := GetUserID(c)
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{
				"success": false,
				"message": "User not authenticated",
			})
			return
		}

		existing, err := repo.Get(c.Request.Context(), userID, key)
		if err != nil {
			c.AbortWithStatusJSON(500, gin.H{
				"success": false,
				"message": "Failed to check idempotency key",
			})
			return
		}

		if existing != nil && !existing.IsExpired() {
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.StatusCode, "application/json", existing.Response)
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// Only successful responses are worth replaying
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			record := &entity.IdempotencyKey{
				UserID:     userID,
				Key:        key,
				Response:   blw.body.Bytes(),
				StatusCode: c.Writer.Status(),
				ExpiresAt:  time.Now().Add(IdempotencyKeyTTL),
			}
			_ = repo.Save(c.Request.Context(), record)
		}
	}
}
