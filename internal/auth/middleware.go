package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// StudentAuth enforces a valid student session cookie. The student reference
// travels in the token subject, never in client input, so a session can only
// ever see its own photos.
func StudentAuth(signingKey, issuer string) gin.HandlerFunc {
	return cookieAuth(StudentCookie, RoleStudent, signingKey, issuer)
}

// AdminAuth enforces a valid admin session cookie on dashboard routes.
func AdminAuth(signingKey, issuer string) gin.HandlerFunc {
	return cookieAuth(AdminCookie, RoleAdmin, signingKey, issuer)
}

func cookieAuth(cookie, role, signingKey, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(cookie)
		if err != nil || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		claims, err := Parse(tokenStr, signingKey, issuer)
		if err != nil || claims.Role != role {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// FromContext returns the session claims set by the middleware.
func FromContext(c *gin.Context) (Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return Claims{}, false
	}
	claims, ok := v.(Claims)
	return claims, ok
}

// SetSessionCookie writes an http-only session cookie scoped to the whole site.
func SetSessionCookie(c *gin.Context, name, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, token, maxAge, "/", "", secure, true)
}

// ClearSessionCookie removes a session cookie.
func ClearSessionCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, "", -1, "/", "", false, true)
}
