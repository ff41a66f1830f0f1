package service

import (
	"context"
	"errors"
	"math"
	"time"

	"moreview/internal/cache"
	"moreview/internal/dto"
	"moreview/internal/models"
	"moreview/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrMovieNotFound = errors.New("movie not found")
	ErrTagNotFound   = errors.New("tag not found")
	ErrInvalidGrade  = errors.New("invalid grade")
	ErrInvalidDate   = errors.New("invalid release date, expected YYYY-MM-DD")
)

// Review ordering options for the movie detail view.
var reviewOrderClauses = map[string]string{
	"created_asc":  "reviews.created_at ASC",
	"created_desc": "reviews.created_at DESC",
	"hearts_asc":   "heart_count ASC",
	"hearts_desc":  "heart_count DESC",
	"rating_asc":   "reviews.rating ASC",
	"rating_desc":  "reviews.rating DESC",
}

type MovieService interface {
	ListPublic(query, order string) ([]dto.MovieResponse, error)
	ListManage(query string) ([]dto.MovieResponse, error)
	GetDetail(movieID int64, viewerID, order string) (*dto.MovieDetailResponse, error)
	Create(req dto.CreateMovieDTO) (*dto.MovieResponse, error)
	Update(movieID int64, req dto.UpdateMovieDTO) (*dto.MovieResponse, error)
	Delete(movieID int64) error
	SetImage(movieID int64, imagePath string) (*dto.MovieResponse, error)
	ListTags() ([]models.Tag, error)
	CreateTag(req dto.CreateTagDTO) (*models.Tag, error)
}

type movieService struct {
	movieRepo   repository.MovieRepository
	tagRepo     repository.TagRepository
	reviewRepo  repository.ReviewRepository
	heartRepo   repository.HeartRepository
	reportRepo  repository.ReportRepository
	ratingCache *cache.RatingCache
}

func NewMovieService(
	movieRepo repository.MovieRepository,
	tagRepo repository.TagRepository,
	reviewRepo repository.ReviewRepository,
	heartRepo repository.HeartRepository,
	reportRepo repository.ReportRepository,
	ratingCache *cache.RatingCache,
) MovieService {
	return &movieService{
		movieRepo:   movieRepo,
		tagRepo:     tagRepo,
		reviewRepo:  reviewRepo,
		heartRepo:   heartRepo,
		reportRepo:  reportRepo,
		ratingCache: ratingCache,
	}
}

// ListPublic returns movies with an uploaded poster, filtered by an optional
// name substring. order "oldest" sorts by release date ascending, anything
// else newest first.
func (s *movieService) ListPublic(query, order string) ([]dto.MovieResponse, error) {
	movies, err := s.movieRepo.ListPublic(query, order == "oldest")
	if err != nil {
		return nil, err
	}
	return toMovieResponses(movies), nil
}

// ListManage returns every movie for the admin listing, newest first.
func (s *movieService) ListManage(query string) ([]dto.MovieResponse, error) {
	movies, err := s.movieRepo.ListAll(query)
	if err != nil {
		return nil, err
	}
	return toMovieResponses(movies), nil
}

// GetDetail returns the movie, its average rating over counted reviews
// rounded to 2 decimals, and its reviews with the viewer's heart/report
// flags. viewerID is empty for anonymous requests.
func (s *movieService) GetDetail(movieID int64, viewerID, order string) (*dto.MovieDetailResponse, error) {
	movie, err := s.movieRepo.GetByID(movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	average, err := s.averageRating(movieID)
	if err != nil {
		return nil, err
	}

	orderClause, ok := reviewOrderClauses[order]
	if !ok {
		orderClause = reviewOrderClauses["created_desc"]
	}

	rows, err := s.reviewRepo.ListByMovie(movieID, orderClause)
	if err != nil {
		return nil, err
	}

	hearted := map[int64]bool{}
	reported := map[int64]bool{}
	if viewerID != "" && len(rows) > 0 {
		reviewIDs := make([]int64, 0, len(rows))
		for _, row := range rows {
			reviewIDs = append(reviewIDs, row.ID)
		}

		heartedIDs, err := s.heartRepo.ReviewIDsHeartedBy(viewerID, reviewIDs)
		if err != nil {
			return nil, err
		}
		for _, id := range heartedIDs {
			hearted[id] = true
		}

		reportedIDs, err := s.reportRepo.ReviewIDsReportedBy(viewerID, reviewIDs)
		if err != nil {
			return nil, err
		}
		for _, id := range reportedIDs {
			reported[id] = true
		}
	}

	reviews := make([]dto.ReviewResponse, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, *dto.FromReviewWithHearts(&rows[i], hearted[rows[i].ID], reported[rows[i].ID]))
	}

	return &dto.MovieDetailResponse{
		Movie:         *dto.FromModelToMovieResponse(movie),
		AverageRating: average,
		Reviews:       reviews,
	}, nil
}

func (s *movieService) averageRating(movieID int64) (float64, error) {
	ctx := context.Background()

	if avg, ok := s.ratingCache.Get(ctx, movieID); ok {
		return avg, nil
	}

	avg, err := s.movieRepo.AverageRating(movieID)
	if err != nil {
		return 0, err
	}
	avg = math.Round(avg*100) / 100

	s.ratingCache.Set(ctx, movieID, avg)
	return avg, nil
}

func (s *movieService) Create(req dto.CreateMovieDTO) (*dto.MovieResponse, error) {
	if !models.ValidGrade(req.Grade) {
		return nil, ErrInvalidGrade
	}

	released, err := time.Parse("2006-01-02", req.DateReleased)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if _, err := s.tagRepo.GetByID(req.TagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	movie := &models.Movie{
		TagID:        req.TagID,
		Name:         req.Name,
		Content:      req.Content,
		OfficialSite: req.OfficialSite,
		Runtime:      req.Runtime,
		Grade:        req.Grade,
		DateReleased: released,
	}

	if err := s.movieRepo.Create(movie); err != nil {
		return nil, err
	}

	movie, err = s.movieRepo.GetByID(movie.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToMovieResponse(movie), nil
}

func (s *movieService) Update(movieID int64, req dto.UpdateMovieDTO) (*dto.MovieResponse, error) {
	if !models.ValidGrade(req.Grade) {
		return nil, ErrInvalidGrade
	}

	released, err := time.Parse("2006-01-02", req.DateReleased)
	if err != nil {
		return nil, ErrInvalidDate
	}

	movie, err := s.movieRepo.GetByID(movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	if _, err := s.tagRepo.GetByID(req.TagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	movie.TagID = req.TagID
	movie.Name = req.Name
	movie.Content = req.Content
	movie.OfficialSite = req.OfficialSite
	movie.Runtime = req.Runtime
	movie.Grade = req.Grade
	movie.DateReleased = released
	movie.Tag = nil

	if err := s.movieRepo.Update(movie); err != nil {
		return nil, err
	}

	movie, err = s.movieRepo.GetByID(movieID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToMovieResponse(movie), nil
}

// Delete removes the movie and, through the cascades, its reviews with their
// hearts and reports.
func (s *movieService) Delete(movieID int64) error {
	if err := s.movieRepo.Delete(movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMovieNotFound
		}
		return err
	}

	s.ratingCache.Invalidate(context.Background(), movieID)
	return nil
}

// SetImage records the stored poster path on the movie.
func (s *movieService) SetImage(movieID int64, imagePath string) (*dto.MovieResponse, error) {
	movie, err := s.movieRepo.GetByID(movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	movie.Image = imagePath
	movie.Tag = nil
	if err := s.movieRepo.Update(movie); err != nil {
		return nil, err
	}

	movie, err = s.movieRepo.GetByID(movieID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToMovieResponse(movie), nil
}

func (s *movieService) ListTags() ([]models.Tag, error) {
	return s.tagRepo.List()
}

func (s *movieService) CreateTag(req dto.CreateTagDTO) (*models.Tag, error) {
	tag := &models.Tag{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func toMovieResponses(movies []models.Movie) []dto.MovieResponse {
	responses := make([]dto.MovieResponse, 0, len(movies))
	for i := range movies {
		responses = append(responses, *dto.FromModelToMovieResponse(&movies[i]))
	}
	return responses
}
