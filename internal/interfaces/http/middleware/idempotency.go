package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"rentpe.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is how long the in-progress marker is held
	LockDuration = 30 * time.Second
	// RetentionDuration is how long a completed response is replayable
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware deduplicates mutating requests carrying an
// Idempotency-Key header. A repeated key while the first request is still
// running yields 409; after completion the stored response is replayed with
// its original status code. Keys are scoped per authenticated user. Requests
// without the header pass through untouched.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" || redis.GetClient() == nil {
			c.Next()
			return
		}

		userID, _ := GetUserID(c)
		storageKey := fmt.Sprintf("idempotency:%s:%s", userID, key)
		ctx := c.Request.Context()

		val, err := redis.Get(ctx, storageKey)
		if err == nil {
			if val == processingMarker {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"error": "Request already in progress",
				})
				return
			}

			status, body := decodeStoredResponse(val)
			c.Header("Content-Type", "application/json")
			c.Header("X-Idempotency-Hit", "true")
			c.String(status, body)
			c.Abort()
			return
		}

		acquired, err := redis.SetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			// redis down: let the request through rather than block payments
			c.Next()
			return
		}
		if !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "Request already in progress",
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			_ = redis.Set(ctx, storageKey, encodeStoredResponse(c.Writer.Status(), w.body.String()), RetentionDuration)
		} else {
			// failed attempts must stay retryable
			_ = redis.Del(ctx, storageKey)
		}
	}
}

// encodeStoredResponse prefixes the body with the status code so a replay
// can restore both. The processing marker never collides with this format.
func encodeStoredResponse(status int, body string) string {
	return strconv.Itoa(status) + "|" + body
}

func decodeStoredResponse(val string) (int, string) {
	head, body, ok := strings.Cut(val, "|")
	if ok {
		if status, err := strconv.Atoi(head); err == nil {
			return status, body
		}
	}
	return http.StatusOK, val
}
