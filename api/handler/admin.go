package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/cinelist/cinelist/api/models"
	"github.com/cinelist/cinelist/auth"
	"github.com/cinelist/cinelist/review"
)

// AdminHandler serves the user management and review moderation endpoints.
// Authorization is enforced by the route group middleware, not here.
type AdminHandler struct {
	directory *auth.Directory
	reviews   *review.Store
}

// NewAdmin creates the admin handler.
func NewAdmin(directory *auth.Directory, reviews *review.Store) *AdminHandler {
	return &AdminHandler{
		directory: directory,
		reviews:   reviews,
	}
}

// protectedUserID is the seeded admin account, which must not be deletable.
const protectedUserID = 1

// Users lists every registered user with passwords masked.
func (h *AdminHandler) Users(c *gin.Context) {
	users := h.directory.All(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   models.ToDisplayUsers(users),
	})
}

// UpdateUser merges the submitted fields into the user record.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	userID, err := parseIntParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid user ID",
		})
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "requête invalide",
		})
		return
	}

	updated, err := h.directory.Update(c.Request.Context(), auth.User{
		ID:    userID,
		Name:  req.Name,
		Email: req.Email,
		Role:  auth.Role(req.Role),
	})
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    models.ToDisplayUser(updated.Masked()),
	})
}

// DeleteUser removes a user. The seeded admin account is refused here, at the
// boundary; the directory itself deletes unconditionally.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := parseIntParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid user ID",
		})
		return
	}

	if userID == protectedUserID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "Impossible de supprimer le compte administrateur",
		})
		return
	}

	ok, err := h.directory.Delete(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": ok})
}

// Reviews lists the full review collection for moderation.
func (h *AdminHandler) Reviews(c *gin.Context) {
	reviews := h.reviews.All(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": models.ToReviewItems(reviews),
	})
}

// DeleteReview removes a single review.
func (h *AdminHandler) DeleteReview(c *gin.Context) {
	reviewID, err := parseIntParam(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid review ID",
		})
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), reviewID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Overview returns users and reviews in one payload for the admin panel.
func (h *AdminHandler) Overview(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		users   []auth.User
		reviews []review.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users = h.directory.All(gctx)
		return nil
	})
	g.Go(func() error {
		reviews = h.reviews.All(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   models.ToDisplayUsers(users),
		"reviews": models.ToReviewItems(reviews),
	})
}
