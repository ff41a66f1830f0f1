package repository

import (
	"moreview/internal/models"

	"gorm.io/gorm"
)

// ReviewWithHearts carries a review together with its heart tally for the
// movie detail listing.
type ReviewWithHearts struct {
	models.Review
	HeartCount int64 `json:"heart_count"`
}

type ReviewRepository interface {
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(reviewID int64) error
	GetByID(reviewID int64) (*models.Review, error)
	ListByMovie(movieID int64, orderClause string) ([]ReviewWithHearts, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

// Delete removes the review; hearts and reports follow through the cascades.
func (r *reviewRepository) Delete(reviewID int64) error {
	result := r.db.Where("id = ?", reviewID).Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepository) GetByID(reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("id = ?", reviewID).
		Preload("User").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByMovie retrieves a movie's reviews with their heart counts, ordered by
// the given clause (one of the clauses built in the movie service).
func (r *reviewRepository) ListByMovie(movieID int64, orderClause string) ([]ReviewWithHearts, error) {
	var reviews []ReviewWithHearts

	err := r.db.Model(&models.Review{}).
		Select("reviews.*, COUNT(hearts.id) AS heart_count").
		Joins("LEFT JOIN hearts ON hearts.review_id = reviews.id").
		Where("reviews.movie_id = ?", movieID).
		Group("reviews.id").
		Order(orderClause).
		Preload("User").
		Find(&reviews).Error

	if err != nil {
		return nil, err
	}

	return reviews, nil
}
