package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/watchlist/internal/common"
	"github.com/dmitrijs2005/watchlist/internal/logging"
	"github.com/dmitrijs2005/watchlist/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

func accessLog(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			requestIDKey, c.GetString(requestIDKey),
		)
	}
}

// accessGate admits a request only with a valid "<scheme> <token>"
// Authorization header. The verified identity is attached to the request
// context; nothing else about the caller is trusted.
func accessGate(tokens Tokens, scheme string, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c.GetHeader(common.AuthorizationHeaderName), scheme)
		if !ok {
			abortUnauthorized(c)
			return
		}

		id, err := tokens.Verify(token)
		if err != nil {
			logger.Warn(c.Request.Context(), "token rejected", "error", err, requestIDKey, c.GetString(requestIDKey))
			abortUnauthorized(c)
			return
		}

		c.Request = c.Request.WithContext(auth.ContextWithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// extractToken splits "<scheme> <token>", matching scheme case-insensitively.
func extractToken(header, scheme string) (string, bool) {
	gotScheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(gotScheme, scheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}
