package models

import (
	"github.com/cinelist/cinelist/auth"
	"github.com/cinelist/cinelist/review"
	"github.com/mergestat/timediff"
)

// FromDirectoryUser builds the session user for a directory record.
func FromDirectoryUser(u *auth.User) *User {
	return &User{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    string(u.Role),
		IsAdmin: u.IsAdmin(),
	}
}

// ToDisplayUser converts a masked directory record for the admin panel.
func ToDisplayUser(u auth.User) DisplayUser {
	return DisplayUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// ToDisplayUsers converts a slice of masked directory records.
func ToDisplayUsers(users []auth.User) []DisplayUser {
	result := make([]DisplayUser, len(users))
	for i, u := range users {
		result[i] = ToDisplayUser(u)
	}
	return result
}

// ToReviewItem converts a stored review for the browser.
func ToReviewItem(r review.Review) ReviewItem {
	return ReviewItem{
		ID:           r.ID,
		MovieID:      r.MovieID,
		Author:       r.Author,
		Content:      r.Content,
		Date:         r.Date,
		RelativeDate: timediff.TimeDiff(r.Date),
	}
}

// ToReviewItems converts a slice of stored reviews.
func ToReviewItems(reviews []review.Review) []ReviewItem {
	result := make([]ReviewItem, len(reviews))
	for i, r := range reviews {
		result[i] = ToReviewItem(r)
	}
	return result
}
