package dto

import (
	"time"

	"moreview/internal/models"
)

// CreateReportDTO for flagging a review
type CreateReportDTO struct {
	ReviewID int64  `json:"review_id" binding:"required"`
	Content  string `json:"content" binding:"required,min=1,max=500"`
}

// ModerateReportDTO carries the admin decision on a pending report
type ModerateReportDTO struct {
	Action string `json:"action" binding:"required,oneof=accept refuse"`
}

// ReportResponse for returning a report
type ReportResponse struct {
	ID            int64     `json:"id"`
	ReviewID      int64     `json:"review_id"`
	ReviewContent string    `json:"review_content,omitempty"`
	MovieName     string    `json:"movie_name,omitempty"`
	Content       string    `json:"content"`
	Status        string    `json:"status"`
	Handler       string    `json:"handler,omitempty"` // username of the resolving admin
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FromModelToReportResponse converts a Report model to ReportResponse DTO
func FromModelToReportResponse(report *models.Report) *ReportResponse {
	resp := &ReportResponse{
		ID:        report.ID,
		ReviewID:  report.ReviewID,
		Content:   report.Content,
		Status:    report.Status,
		CreatedAt: report.CreatedAt,
		UpdatedAt: report.UpdatedAt,
	}
	if report.Review != nil {
		resp.ReviewContent = report.Review.Content
		if report.Review.Movie != nil {
			resp.MovieName = report.Review.Movie.Name
		}
	}
	if report.Handler != nil {
		resp.Handler = report.Handler.Username
	}
	return resp
}
