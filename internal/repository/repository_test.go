package repository

import (
	"testing"
	"time"

	"moreview/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite store with foreign keys
// enforced, migrated to the same schema the server boots with.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see a separate empty memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Movie{},
		&models.Review{},
		&models.Heart{},
		&models.Report{},
	))
	return db
}

func seedMovieWithReview(t *testing.T, db *gorm.DB) (*models.User, *models.Movie, *models.Review) {
	t.Helper()

	user := &models.User{Username: "critic", FirstName: "A", LastName: "B", Email: "critic@example.com", Password: "x", IsActive: true}
	require.NoError(t, db.Create(user).Error)

	tag := &models.Tag{Name: "sci-fi"}
	require.NoError(t, db.Create(tag).Error)

	movie := &models.Movie{
		TagID:        tag.ID,
		Name:         "Dune",
		Content:      "spice",
		Runtime:      155,
		Grade:        models.GradeParental12,
		DateReleased: time.Date(2021, 10, 22, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(movie).Error)

	review := &models.Review{UserID: user.ID, MovieID: movie.ID, Content: "great pacing", Rating: 4}
	require.NoError(t, db.Create(review).Error)

	return user, movie, review
}

func TestMovieDeleteCascadesToReviewsHeartsReports(t *testing.T) {
	db := newTestDB(t)
	user, movie, review := seedMovieWithReview(t, db)

	require.NoError(t, db.Create(&models.Heart{UserID: user.ID, ReviewID: review.ID}).Error)
	require.NoError(t, db.Create(&models.Report{UserID: user.ID, ReviewID: review.ID, Content: "spam", Status: models.ReportPending}).Error)

	movieRepo := NewMovieRepository(db)
	require.NoError(t, movieRepo.Delete(movie.ID))

	var reviews, hearts, reports int64
	db.Model(&models.Review{}).Count(&reviews)
	db.Model(&models.Heart{}).Count(&hearts)
	db.Model(&models.Report{}).Count(&reports)

	assert.Zero(t, reviews)
	assert.Zero(t, hearts)
	assert.Zero(t, reports)
}

func TestReviewDeleteCascadesToHeartsAndReports(t *testing.T) {
	db := newTestDB(t)
	user, _, review := seedMovieWithReview(t, db)

	require.NoError(t, db.Create(&models.Heart{UserID: user.ID, ReviewID: review.ID}).Error)
	require.NoError(t, db.Create(&models.Report{UserID: user.ID, ReviewID: review.ID, Content: "spam", Status: models.ReportPending}).Error)

	reviewRepo := NewReviewRepository(db)
	require.NoError(t, reviewRepo.Delete(review.ID))

	var hearts, reports int64
	db.Model(&models.Heart{}).Count(&hearts)
	db.Model(&models.Report{}).Count(&reports)

	assert.Zero(t, hearts)
	assert.Zero(t, reports)
}

func TestReviewUpdateAdvancesUpdatedAt(t *testing.T) {
	db := newTestDB(t)
	_, _, review := seedMovieWithReview(t, db)

	before := review.UpdatedAt
	time.Sleep(20 * time.Millisecond)

	review.Content = "great pacing, weak third act"
	reviewRepo := NewReviewRepository(db)
	require.NoError(t, reviewRepo.Update(review))

	stored, err := reviewRepo.GetByID(review.ID)
	require.NoError(t, err)
	assert.True(t, stored.UpdatedAt.After(before))
}

func TestReportGetByIDPreloadsHandler(t *testing.T) {
	db := newTestDB(t)
	user, _, review := seedMovieWithReview(t, db)

	admin := &models.User{Username: "moderator", FirstName: "M", LastName: "O", Email: "mod@example.com", Password: "x", IsActive: true, IsSuperuser: true}
	require.NoError(t, db.Create(admin).Error)

	report := &models.Report{UserID: user.ID, ReviewID: review.ID, Content: "spam", Status: models.ReportAccepted, HandlerID: &admin.ID}
	require.NoError(t, db.Create(report).Error)

	reportRepo := NewReportRepository(db)
	stored, err := reportRepo.GetByID(report.ID)
	require.NoError(t, err)

	require.NotNil(t, stored.Handler)
	assert.Equal(t, "moderator", stored.Handler.Username)
	require.NotNil(t, stored.Review)
	assert.Equal(t, review.ID, stored.Review.ID)
}

func TestHeartCountByReview(t *testing.T) {
	db := newTestDB(t)
	user, _, review := seedMovieWithReview(t, db)

	other := &models.User{Username: "other", FirstName: "C", LastName: "D", Email: "other@example.com", Password: "x", IsActive: true}
	require.NoError(t, db.Create(other).Error)

	heartRepo := NewHeartRepository(db)
	require.NoError(t, heartRepo.Create(&models.Heart{UserID: user.ID, ReviewID: review.ID}))
	require.NoError(t, heartRepo.Create(&models.Heart{UserID: other.ID, ReviewID: review.ID}))

	count, err := heartRepo.CountByReview(review.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
