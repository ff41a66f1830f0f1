package repository

import (
	"moreview/internal/models"

	"gorm.io/gorm"
)

type MovieRepository interface {
	Create(movie *models.Movie) error
	Update(movie *models.Movie) error
	Delete(movieID int64) error
	GetByID(movieID int64) (*models.Movie, error)
	ListPublic(query string, oldestFirst bool) ([]models.Movie, error)
	ListAll(query string) ([]models.Movie, error)
	AverageRating(movieID int64) (float64, error)
}

type movieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) Create(movie *models.Movie) error {
	return r.db.Create(movie).Error
}

func (r *movieRepository) Update(movie *models.Movie) error {
	return r.db.Save(movie).Error
}

// Delete removes the movie; its reviews, hearts and reports go with it
// through the declared cascades.
func (r *movieRepository) Delete(movieID int64) error {
	result := r.db.Where("id = ?", movieID).Delete(&models.Movie{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *movieRepository) GetByID(movieID int64) (*models.Movie, error) {
	var movie models.Movie
	err := r.db.Where("id = ?", movieID).
		Preload("Tag").
		First(&movie).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// ListPublic retrieves movies that have a poster, filtered by an optional
// name substring and ordered by release date.
func (r *movieRepository) ListPublic(query string, oldestFirst bool) ([]models.Movie, error) {
	var movies []models.Movie

	order := "date_released DESC"
	if oldestFirst {
		order = "date_released ASC"
	}

	q := r.db.Where("image <> ''").Preload("Tag").Order(order)
	if query != "" {
		q = q.Where("name LIKE ?", "%"+query+"%")
	}

	err := q.Find(&movies).Error
	return movies, err
}

// ListAll retrieves every movie for the manage listing, newest first.
func (r *movieRepository) ListAll(query string) ([]models.Movie, error) {
	var movies []models.Movie

	q := r.db.Preload("Tag").Order("created_at DESC")
	if query != "" {
		q = q.Where("name LIKE ?", "%"+query+"%")
	}

	err := q.Find(&movies).Error
	return movies, err
}

// AverageRating computes the mean rating over reviews still counted toward
// aggregation (existed = true).
func (r *movieRepository) AverageRating(movieID int64) (float64, error) {
	var avg struct {
		Average float64
	}

	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as average").
		Where("movie_id = ? AND existed = ?", movieID, true).
		Scan(&avg).Error

	if err != nil {
		return 0, err
	}

	return avg.Average, nil
}
