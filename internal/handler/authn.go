package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photodrop/internal/auth"
	"photodrop/internal/student"
)

// Login verifies a reference/password pair and sets the student session
// cookie. All failure modes share one message and status.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Reference string `json:"reference" binding:"required"`
		Password  string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference and password are required"})
		return
	}

	s, err := h.students.Authenticate(c.Request.Context(), req.Reference, req.Password)
	if err != nil {
		if errors.Is(err, student.ErrInvalidCredentials) {
			loginsTotal.WithLabelValues("denied").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.serviceError(c, "login", err)
		return
	}

	token, _, err := auth.Issue(s.Reference, auth.RoleStudent, h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.SessionTTL)
	if err != nil {
		h.serviceError(c, "issue token", err)
		return
	}
	auth.SetSessionCookie(c, auth.StudentCookie, token, int(h.cfg.SessionTTL.Seconds()), h.secureCookies())
	loginsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "login successful"})
}

// Logout clears the student session cookie.
func (h *Handler) Logout(c *gin.Context) {
	auth.ClearSessionCookie(c, auth.StudentCookie)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// AdminLogin checks the configured admin password and sets the admin session
// cookie. The cookie is a signed token verified on every admin route, not a
// client-settable flag.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}
	if h.cfg.AdminPassword == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin login not configured"})
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.AdminPassword)) != 1 {
		loginsTotal.WithLabelValues("denied").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, _, err := auth.Issue("", auth.RoleAdmin, h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.SessionTTL)
	if err != nil {
		h.serviceError(c, "issue admin token", err)
		return
	}
	auth.SetSessionCookie(c, auth.AdminCookie, token, int(h.cfg.SessionTTL.Seconds()), h.secureCookies())
	loginsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "login successful"})
}
