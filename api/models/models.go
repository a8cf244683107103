package models

import "time"

// User is the authenticated user attached to the request context, built from
// session data.
type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}

// LoginRequest is the login form payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the registration form payload.
type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// UpdateUserRequest carries the editable user fields of the admin edit form.
// Empty fields are left untouched.
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// DisplayUser is a user as exposed to the admin panel, password always masked.
type DisplayUser struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddReviewRequest is the payload for posting a review on a movie.
type AddReviewRequest struct {
	Content string `json:"content" binding:"required"`
}

// ReviewItem is a review as served to the browser, with a humanized date.
type ReviewItem struct {
	ID           int       `json:"id"`
	MovieID      int       `json:"movieId"`
	Author       string    `json:"author"`
	Content      string    `json:"content"`
	Date         time.Time `json:"date"`
	RelativeDate string    `json:"relativeDate"`
}

// UpdateStatusRequest is the payload for changing a watchlist entry's status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
