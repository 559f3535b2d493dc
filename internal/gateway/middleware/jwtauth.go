package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stockwatch-system/internal/utils"
)

const ClaimsContextKey = "auth_claims"

// JWTAuth validates bearer tokens and stores the parsed claims on the
// request context. An empty secret disables the middleware.
func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "missing bearer token",
			})
			return
		}

		claims, err := utils.ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "invalid token",
			})
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

// CanAccessCompany reports whether the caller may read the company. When no
// claims are attached (auth disabled) every company is readable; the
// authorization decision itself is the token issuer's, not this service's.
func CanAccessCompany(c *gin.Context, companyID int64) bool {
	v, ok := c.Get(ClaimsContextKey)
	if !ok {
		return true
	}
	claims, ok := v.(*utils.Claims)
	if !ok {
		return false
	}
	return claims.HasCompany(companyID)
}
