package auth

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/cinelist/cinelist/api/models"
	"github.com/cinelist/cinelist/auth"
)

// Handler serves the session endpoints on top of the user directory.
type Handler struct {
	directory *auth.Directory
}

// NewHandler creates the auth handler.
func NewHandler(directory *auth.Directory) *Handler {
	return &Handler{directory: directory}
}

// Login authenticates email and password and opens a session.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "requête invalide",
		})
		return
	}

	user, err := h.directory.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if err := saveSession(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    models.FromDirectoryUser(user),
	})
}

// Register creates a new account and opens a session for it.
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "requête invalide",
		})
		return
	}

	user, err := h.directory.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) || errors.Is(err, auth.ErrPasswordMismatch) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if err := saveSession(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    models.FromDirectoryUser(user),
	})
}

// Logout clears the session.
func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Error("failed to clear session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the current session user.
func (h *Handler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "authentification requise",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

func saveSession(c *gin.Context, user *auth.User) error {
	session := sessions.Default(c)
	session.Set(sessionUserID, user.ID)
	session.Set(sessionUserName, user.Name)
	session.Set(sessionUserEmail, user.Email)
	session.Set(sessionUserRole, string(user.Role))
	return session.Save()
}
