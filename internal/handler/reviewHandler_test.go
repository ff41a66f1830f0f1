package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"moreview/internal/dto"
	"moreview/internal/models"
	"moreview/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockReviewService mocks the ReviewService interface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(userID string, req dto.CreateReviewDTO) (*models.Review, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Update(reviewID int64, userID string, isSuperuser bool, req dto.UpdateReviewDTO) (*models.Review, error) {
	args := m.Called(reviewID, userID, isSuperuser, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Delete(reviewID int64, userID string, isSuperuser bool) error {
	args := m.Called(reviewID, userID, isSuperuser)
	return args.Error(0)
}

func (m *MockReviewService) ToggleHeart(reviewID int64, userID, action string) (bool, int64, error) {
	args := m.Called(reviewID, userID, action)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func mockAuthContext(userID string, isSuperuser bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("username", "testuser")
		c.Set("isSuperuser", isSuperuser)
		c.Next()
	}
}

func setupReviewRouter(mockService *MockReviewService, userID string, isSuperuser bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewReviewHandler(mockService)

	authed := r.Group("", mockAuthContext(userID, isSuperuser))
	h.RegisterRoutes(authed)
	return r
}

func TestReviewHandlerCreate_Success(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService, "user-id", false)

	req := dto.CreateReviewDTO{MovieID: 1, Content: "great pacing", Rating: 4}
	mockService.On("Create", "user-id", req).
		Return(&models.Review{ID: 42, UserID: "user-id", MovieID: 1, Rating: 4}, nil)

	w := postJSON(router, "/reviews", req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response models.Review
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(42), response.ID)
	mockService.AssertExpectations(t)
}

func TestReviewHandlerCreate_RatingOutOfRange(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService, "user-id", false)

	req := dto.CreateReviewDTO{MovieID: 1, Content: "x", Rating: 120}
	mockService.On("Create", "user-id", req).Return(nil, service.ErrInvalidRating)

	w := postJSON(router, "/reviews", req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockService.AssertExpectations(t)
}

func TestReviewHandlerUpdate_Forbidden(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService, "someone-else", false)

	req := dto.UpdateReviewDTO{Content: "x", Rating: 3}
	mockService.On("Update", int64(7), "someone-else", false, req).Return(nil, service.ErrNotReviewOwner)

	body, _ := json.Marshal(req)
	httpReq, _ := http.NewRequest("PUT", "/reviews/7", bytes.NewBuffer(body))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertExpectations(t)
}

func TestReviewHandlerUpdate_BadID(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService, "user-id", false)

	body, _ := json.Marshal(dto.UpdateReviewDTO{Content: "x", Rating: 3})
	httpReq, _ := http.NewRequest("PUT", "/reviews/abc", bytes.NewBuffer(body))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Update")
}

func TestReviewHandlerDelete_Success(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService, "admin-id", true)

	mockService.On("Delete", int64(7), "admin-id", true).Return(nil)

	httpReq, _ := http.NewRequest("DELETE", "/reviews/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestReviewHandlerDelete_NotFound(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService, "user-id", false)

	mockService.On("Delete", int64(99), "user-id", false).Return(service.ErrReviewNotFound)

	httpReq, _ := http.NewRequest("DELETE", "/reviews/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestReviewHandlerHeart(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService, "user-id", false)

	mockService.On("ToggleHeart", int64(7), "user-id", "heart").Return(true, int64(3), nil)

	w := postJSON(router, "/reviews/7/heart", dto.HeartActionDTO{Action: "heart"})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, true, response["hearted"])
	assert.Equal(t, float64(3), response["hearts"])
	mockService.AssertExpectations(t)
}

func TestReviewHandlerHeart_UnknownAction(t *testing.T) {
	mockService := new(MockReviewService)
	router := setupReviewRouter(mockService, "user-id", false)

	// binding rejects it before the service is reached
	w := postJSON(router, "/reviews/7/heart", map[string]string{"action": "toggle"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "ToggleHeart")
}
