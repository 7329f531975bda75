package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/config"
	"github.com/anggiemonteroariza-afk/App-Deudores-ED/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the operator session token and stores the
// operator name in the context. With no password hash configured the
// application runs in open local mode and every request passes through.
func AuthMiddleware(cfg config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.PasswordHash == "" {
			c.Set("operator", "local")
			c.Next()
			return
		}

		var tokenStr string

		// 1) Header: Authorization: Bearer xxx
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		// 2) query parameter ?token=xxx, for spreadsheet downloads where a
		// custom header is not an option
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(cfg.JWTSecret, tokenStr)
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session expired, log in again")
			c.Abort()
			return
		}
		if claims.Operator != cfg.Username {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "unknown operator")
			c.Abort()
			return
		}

		c.Set("operator", claims.Operator)
		c.Next()
	}
}
