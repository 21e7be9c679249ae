package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/semsolhan1/todo-api202306/internal/models"
	"github.com/semsolhan1/todo-api202306/internal/service"
	"github.com/semsolhan1/todo-api202306/pkg/logger"
)

const (
	userKey = "user"
	roleKey = "role"
)

// AuthMiddleware verifies the bearer access token and stores the caller's id
// and role on the request context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		auth := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if auth == "" || !strings.HasPrefix(auth, prefix) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			logger.Debug(ctx, "Missing or invalid Authorization header")
			c.Abort()
			return
		}
		tokenStr := strings.TrimSpace(auth[len(prefix):])
		if secret == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server misconfiguration"})
			c.Abort()
			return
		}
		var claims service.TokenClaims
		token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			logger.Debug(ctx, "JWT parse failed", "error", err)
			c.Abort()
			return
		}
		c.Set(userKey, claims.Subject)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// CallerInfo extracts the authenticated caller identity set by AuthMiddleware.
func CallerInfo(c *gin.Context) (models.TokenUserInfo, bool) {
	uid, _ := c.Get(userKey)
	userID, _ := uid.(string)
	if userID == "" {
		return models.TokenUserInfo{}, false
	}
	r, _ := c.Get(roleKey)
	role, _ := r.(models.Role)
	return models.TokenUserInfo{UserID: userID, Role: role}, true
}

// RequestID attaches a request id to the context logger and response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		ctx := logger.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
