package repository

import (
	"moreview/internal/models"

	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(report *models.Report) error
	Update(report *models.Report) error
	GetByID(reportID int64) (*models.Report, error)
	ListByReporter(userID string) ([]models.Report, error)
	ListAll(movieQuery, status string) ([]models.Report, error)
	ReviewIDsReportedBy(userID string, reviewIDs []int64) ([]int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) Update(report *models.Report) error {
	return r.db.Save(report).Error
}

func (r *reportRepository) GetByID(reportID int64) (*models.Report, error) {
	var report models.Report
	err := r.db.Where("id = ?", reportID).
		Preload("Review").
		Preload("Review.Movie").
		Preload("Handler").
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ListByReporter retrieves the user's own reports, withdrawn ones excluded,
// most recently updated first.
func (r *reportRepository) ListByReporter(userID string) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Where("user_id = ? AND status <> ?", userID, models.ReportWithdrawn).
		Preload("Review").
		Preload("Review.Movie").
		Order("updated_at DESC").
		Find(&reports).Error
	return reports, err
}

// ListAll retrieves every report for the moderation screen, optionally
// filtered by movie-name substring and status, most recently updated first.
func (r *reportRepository) ListAll(movieQuery, status string) ([]models.Report, error) {
	var reports []models.Report

	q := r.db.Model(&models.Report{}).
		Preload("Review").
		Preload("Review.Movie").
		Preload("Handler").
		Order("reports.updated_at DESC")

	if movieQuery != "" {
		q = q.Joins("JOIN reviews ON reviews.id = reports.review_id").
			Joins("JOIN movies ON movies.id = reviews.movie_id").
			Where("movies.name LIKE ?", "%"+movieQuery+"%")
	}
	if status != "" && status != "all" {
		q = q.Where("reports.status = ?", status)
	}

	err := q.Find(&reports).Error
	return reports, err
}

// ReviewIDsReportedBy narrows reviewIDs down to the ones the user has an
// open (non-withdrawn) report against.
func (r *reportRepository) ReviewIDsReportedBy(userID string, reviewIDs []int64) ([]int64, error) {
	if len(reviewIDs) == 0 {
		return nil, nil
	}

	var ids []int64
	err := r.db.Model(&models.Report{}).
		Where("user_id = ? AND review_id IN ? AND status <> ?", userID, reviewIDs, models.ReportWithdrawn).
		Pluck("review_id", &ids).Error
	return ids, err
}
