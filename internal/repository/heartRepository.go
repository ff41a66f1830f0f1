package repository

import (
	"moreview/internal/models"

	"gorm.io/gorm"
)

type HeartRepository interface {
	Create(heart *models.Heart) error
	DeleteByUserAndReview(userID string, reviewID int64) error
	Exists(userID string, reviewID int64) (bool, error)
	CountByReview(reviewID int64) (int64, error)
	ReviewIDsHeartedBy(userID string, reviewIDs []int64) ([]int64, error)
}

type heartRepository struct {
	db *gorm.DB
}

func NewHeartRepository(db *gorm.DB) HeartRepository {
	return &heartRepository{db: db}
}

func (r *heartRepository) Create(heart *models.Heart) error {
	return r.db.Create(heart).Error
}

func (r *heartRepository) DeleteByUserAndReview(userID string, reviewID int64) error {
	return r.db.Where("user_id = ? AND review_id = ?", userID, reviewID).
		Delete(&models.Heart{}).Error
}

func (r *heartRepository) Exists(userID string, reviewID int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Heart{}).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Count(&count).Error
	return count > 0, err
}

func (r *heartRepository) CountByReview(reviewID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Heart{}).Where("review_id = ?", reviewID).Count(&count).Error
	return count, err
}

// ReviewIDsHeartedBy narrows reviewIDs down to the ones the user has hearted.
func (r *heartRepository) ReviewIDsHeartedBy(userID string, reviewIDs []int64) ([]int64, error) {
	if len(reviewIDs) == 0 {
		return nil, nil
	}

	var ids []int64
	err := r.db.Model(&models.Heart{}).
		Where("user_id = ? AND review_id IN ?", userID, reviewIDs).
		Pluck("review_id", &ids).Error
	return ids, err
}
