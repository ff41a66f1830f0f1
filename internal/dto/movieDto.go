package dto

import (
	"time"

	"moreview/internal/models"
)

// CreateMovieDTO for creating a catalog entry
type CreateMovieDTO struct {
	TagID        int64  `json:"tag_id" binding:"required"`
	Name         string `json:"name" binding:"required,max=150"`
	Content      string `json:"content" binding:"required,max=500"`
	OfficialSite string `json:"official_site" binding:"omitempty,url"`
	Runtime      int    `json:"runtime" binding:"required,min=1"`
	Grade        string `json:"grade" binding:"required"`
	DateReleased string `json:"date_released" binding:"required"` // YYYY-MM-DD
}

// UpdateMovieDTO for editing a catalog entry
type UpdateMovieDTO struct {
	TagID        int64  `json:"tag_id" binding:"required"`
	Name         string `json:"name" binding:"required,max=150"`
	Content      string `json:"content" binding:"required,max=500"`
	OfficialSite string `json:"official_site" binding:"omitempty,url"`
	Runtime      int    `json:"runtime" binding:"required,min=1"`
	Grade        string `json:"grade" binding:"required"`
	DateReleased string `json:"date_released" binding:"required"` // YYYY-MM-DD
}

// MovieResponse for returning a catalog entry
type MovieResponse struct {
	ID           int64     `json:"id"`
	TagID        int64     `json:"tag_id"`
	TagName      string    `json:"tag_name,omitempty"`
	Name         string    `json:"name"`
	Content      string    `json:"content"`
	OfficialSite string    `json:"official_site"`
	Runtime      int       `json:"runtime"`
	Image        string    `json:"image"`
	Grade        string    `json:"grade"`
	DateReleased time.Time `json:"date_released"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FromModelToMovieResponse converts a Movie model to MovieResponse DTO
func FromModelToMovieResponse(movie *models.Movie) *MovieResponse {
	resp := &MovieResponse{
		ID:           movie.ID,
		TagID:        movie.TagID,
		Name:         movie.Name,
		Content:      movie.Content,
		OfficialSite: movie.OfficialSite,
		Runtime:      movie.Runtime,
		Image:        movie.Image,
		Grade:        movie.Grade,
		DateReleased: movie.DateReleased,
		CreatedAt:    movie.CreatedAt,
		UpdatedAt:    movie.UpdatedAt,
	}
	if movie.Tag != nil {
		resp.TagName = movie.Tag.Name
	}
	return resp
}

// MovieDetailResponse for the detail view: the movie plus its aggregated
// rating and ordered reviews.
type MovieDetailResponse struct {
	Movie         MovieResponse    `json:"movie"`
	AverageRating float64          `json:"average_rating"` // rounded to 2 decimals
	Reviews       []ReviewResponse `json:"reviews"`
}

// CreateTagDTO for creating a movie category label
type CreateTagDTO struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}
