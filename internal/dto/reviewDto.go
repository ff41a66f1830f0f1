package dto

import (
	"time"

	"moreview/internal/repository"
)

// CreateReviewDTO for posting a review on a movie
type CreateReviewDTO struct {
	MovieID int64  `json:"movie_id" binding:"required"`
	Content string `json:"content" binding:"required,min=1,max=5000"`
	Rating  int    `json:"rating" binding:"required"`
}

// UpdateReviewDTO for editing an existing review
type UpdateReviewDTO struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
	Rating  int    `json:"rating" binding:"required"`
}

// HeartActionDTO carries the explicit toggle intent. The action field
// replaces the original UI's reliance on which submit button was pressed.
type HeartActionDTO struct {
	Action string `json:"action" binding:"required,oneof=heart unheart"`
}

// ReviewResponse for returning a review in the movie detail listing
type ReviewResponse struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating"`
	HeartCount int64     `json:"heart_count"`
	Hearted    bool      `json:"hearted"`  // the viewing user has hearted it
	Reported   bool      `json:"reported"` // the viewing user has an open report on it
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FromReviewWithHearts converts an aggregated review row to a ReviewResponse
func FromReviewWithHearts(row *repository.ReviewWithHearts, hearted, reported bool) *ReviewResponse {
	resp := &ReviewResponse{
		ID:         row.ID,
		Content:    row.Content,
		Rating:     row.Rating,
		HeartCount: row.HeartCount,
		Hearted:    hearted,
		Reported:   reported,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if row.User != nil {
		resp.Username = row.User.Username
	}
	return resp
}
