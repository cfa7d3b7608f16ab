package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/askstack/askstack-api/pkg/helpers"
	"github.com/askstack/askstack-api/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth validates the access token cookie and requires an active session
// in Redis. On success the acting user's id is set in the Gin context;
// downstream code trusts it without re-validating credentials.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.AbortWith(c, http.StatusUnauthorized, "missing access token")
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortWith(c, http.StatusUnauthorized, "invalid access token")
			return
		}

		key := "user:session:" + claims.UserID
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 {
			response.AbortWith(c, http.StatusUnauthorized, "session not found")
			return
		}

		c.Set(CtxUserIDKey, data["user_id"])
		c.Set("username", data["username"])
		c.Next()
	}
}

// NotLoggedIn blocks requests carrying a valid access token; used on
// registration and login so an active session cannot re-run them.
func NotLoggedIn(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			c.Next()
			return
		}
		if _, err := jwt.ParseAccessToken(token); err == nil {
			response.AbortWith(c, http.StatusForbidden, "You are already logged in")
			return
		}
		c.Next()
	}
}
