package app

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// TokenVerifier checks an API token. *session.TokenStore implements it.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

func bearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func isAdminToken(tok, adminToken string) bool {
	return adminToken != "" && subtle.ConstantTimeCompare([]byte(tok), []byte(adminToken)) == 1
}

// AuthRequired 接受管理员 token 或已签发的 API token
func AuthRequired(tokens TokenVerifier, adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := bearer(c)
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		if isAdminToken(tok, adminToken) {
			c.Set("isAdmin", true)
			c.Set("token", tok)
			c.Next()
			return
		}
		ok, err := tokens.Verify(c.Request.Context(), tok)
		if err != nil {
			log.Error().Err(err).Msg("verify token")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, H{"error": "token store unavailable"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid token"})
			return
		}
		c.Set("isAdmin", false)
		c.Set("token", tok)
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, _ := c.Get("isAdmin"); v != true {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
