package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/cinelist/cinelist/api/models"
)

// Session keys for the authenticated user.
const (
	sessionUserID    = "user_id"
	sessionUserName  = "user_name"
	sessionUserEmail = "user_email"
	sessionUserRole  = "user_role"
)

// userFromSession rebuilds the session user, or nil when no session is present.
func userFromSession(c *gin.Context) *models.User {
	session := sessions.Default(c)
	userID, ok := session.Get(sessionUserID).(int)
	if !ok {
		return nil
	}
	role, _ := session.Get(sessionUserRole).(string)
	name, _ := session.Get(sessionUserName).(string)
	email, _ := session.Get(sessionUserEmail).(string)
	return &models.User{
		ID:      userID,
		Name:    name,
		Email:   email,
		Role:    role,
		IsAdmin: role == "admin",
	}
}

// LoadUser attaches the session user to the context when one is present, but
// never rejects the request. Handlers that serve a guest state use this.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := userFromSession(c); user != nil {
			c.Set("user", user)
		}
		c.Next()
	}
}

// RequireAuth rejects requests without an authenticated session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := userFromSession(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "authentification requise",
			})
			c.Abort()
			return
		}
		c.Set("user", user)
	}
}

// RequireAdmin rejects authenticated users without the admin role. It must run
// after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := c.MustGet("user").(*models.User)
		if !ok || !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Accès non autorisé",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the session user from the context, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if user, ok := c.Get("user"); ok {
		if u, ok := user.(*models.User); ok {
			return u
		}
	}
	return nil
}
