package service

import (
	"context"
	"errors"

	"moreview/internal/cache"
	"moreview/internal/dto"
	"moreview/internal/models"
	"moreview/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound     = errors.New("review not found")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrNotReviewOwner     = errors.New("you don't have permission to modify this review")
	ErrUnknownHeartAction = errors.New("action must be heart or unheart")
)

type ReviewService interface {
	Create(userID string, req dto.CreateReviewDTO) (*models.Review, error)
	Update(reviewID int64, userID string, isSuperuser bool, req dto.UpdateReviewDTO) (*models.Review, error)
	Delete(reviewID int64, userID string, isSuperuser bool) error
	ToggleHeart(reviewID int64, userID, action string) (hearted bool, hearts int64, err error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	movieRepo   repository.MovieRepository
	heartRepo   repository.HeartRepository
	ratingCache *cache.RatingCache
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	movieRepo repository.MovieRepository,
	heartRepo repository.HeartRepository,
	ratingCache *cache.RatingCache,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		movieRepo:   movieRepo,
		heartRepo:   heartRepo,
		ratingCache: ratingCache,
	}
}

// Create inserts a review owned by userID on the given movie.
func (s *reviewService) Create(userID string, req dto.CreateReviewDTO) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.movieRepo.GetByID(req.MovieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	review := &models.Review{
		UserID:  userID,
		MovieID: req.MovieID,
		Content: req.Content,
		Rating:  req.Rating,
		Existed: true,
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	s.ratingCache.Invalidate(context.Background(), req.MovieID)

	return s.reviewRepo.GetByID(review.ID)
}

// Update edits a review. Only the owner or an admin may do so.
func (s *reviewService) Update(reviewID int64, userID string, isSuperuser bool, req dto.UpdateReviewDTO) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if review.UserID != userID && !isSuperuser {
		return nil, ErrNotReviewOwner
	}

	review.Content = req.Content
	review.Rating = req.Rating
	review.User = nil

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	s.ratingCache.Invalidate(context.Background(), review.MovieID)

	return s.reviewRepo.GetByID(reviewID)
}

// Delete removes a review; hearts and reports cascade with it. Only the
// owner or an admin may do so.
func (s *reviewService) Delete(reviewID int64, userID string, isSuperuser bool) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if review.UserID != userID && !isSuperuser {
		return ErrNotReviewOwner
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		return err
	}

	s.ratingCache.Invalidate(context.Background(), review.MovieID)
	return nil
}

// ToggleHeart applies the explicit heart intent. Hearting an already-hearted
// review, or unhearting one without a heart, is a no-op. Returns whether a
// heart exists afterwards plus the review's resulting heart count.
func (s *reviewService) ToggleHeart(reviewID int64, userID, action string) (bool, int64, error) {
	if _, err := s.reviewRepo.GetByID(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrReviewNotFound
		}
		return false, 0, err
	}

	exists, err := s.heartRepo.Exists(userID, reviewID)
	if err != nil {
		return false, 0, err
	}

	var hearted bool
	switch action {
	case "heart":
		if !exists {
			heart := &models.Heart{UserID: userID, ReviewID: reviewID}
			if err := s.heartRepo.Create(heart); err != nil {
				return false, 0, err
			}
		}
		hearted = true
	case "unheart":
		if exists {
			if err := s.heartRepo.DeleteByUserAndReview(userID, reviewID); err != nil {
				return false, 0, err
			}
		}
		hearted = false
	default:
		return exists, 0, ErrUnknownHeartAction
	}

	hearts, err := s.heartRepo.CountByReview(reviewID)
	if err != nil {
		return hearted, 0, err
	}
	return hearted, hearts, nil
}
