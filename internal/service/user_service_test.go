package service

import (
	"testing"

	"moreview/internal/dto"
	"moreview/internal/middleware/auth"
	"moreview/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestCreateAdmin_ForcesSuperuser(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	userService := NewUserService(mockUserRepo, mockRefreshTokenRepo)

	mockUserRepo.On("FindByUsername", "newadmin").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Run(func(args mock.Arguments) {
		created := args.Get(0).(*models.User)
		assert.True(t, created.IsSuperuser)
		assert.True(t, created.IsActive)
		assert.NoError(t, auth.VerifyPassword(created.Password, "adminpass1"))
	})

	user, err := userService.CreateAdmin(dto.AdminCreateDTO{
		Username:  "newadmin",
		FirstName: "New",
		LastName:  "Admin",
		Email:     "admin@example.com",
		Password:  "adminpass1",
	})

	assert.NoError(t, err)
	assert.True(t, user.IsSuperuser)
	mockUserRepo.AssertExpectations(t)
}

func TestCreateAdmin_UsernameTaken(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	userService := NewUserService(mockUserRepo, mockRefreshTokenRepo)

	mockUserRepo.On("FindByUsername", "newadmin").Return(&models.User{Username: "newadmin"}, nil)

	user, err := userService.CreateAdmin(dto.AdminCreateDTO{Username: "newadmin", Password: "adminpass1"})

	assert.Equal(t, ErrNameInUse, err)
	assert.Nil(t, user)
	mockUserRepo.AssertNotCalled(t, "Create")
}

func TestDeactivate_SoftDeleteAndRevoke(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	userService := NewUserService(mockUserRepo, mockRefreshTokenRepo)

	user := &models.User{ID: "user-id", Username: "testuser", IsActive: true}
	mockUserRepo.On("FindByID", "user-id").Return(user, nil)
	mockUserRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Run(func(args mock.Arguments) {
		assert.False(t, args.Get(0).(*models.User).IsActive)
	})
	mockRefreshTokenRepo.On("RevokeAllForUser", "user-id").Return(nil)

	err := userService.Deactivate("user-id")

	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
	mockRefreshTokenRepo.AssertExpectations(t)
}

func TestDeactivate_NotFound(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	userService := NewUserService(mockUserRepo, mockRefreshTokenRepo)

	mockUserRepo.On("FindByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	err := userService.Deactivate("missing")

	assert.Equal(t, ErrUserNotFound, err)
	mockRefreshTokenRepo.AssertNotCalled(t, "RevokeAllForUser")
}

func TestUpdateProfile(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockRefreshTokenRepo := new(MockRefreshTokenRepository)
	userService := NewUserService(mockUserRepo, mockRefreshTokenRepo)

	user := &models.User{ID: "user-id", Username: "testuser", FirstName: "Old", Email: "old@example.com"}
	mockUserRepo.On("FindByID", "user-id").Return(user, nil)
	mockUserRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil)

	updated, err := userService.UpdateProfile("user-id", dto.UpdateProfileDTO{
		FirstName: "New",
		LastName:  "Name",
		Email:     "new@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, "New", updated.FirstName)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "testuser", updated.Username) // username is immutable
	mockUserRepo.AssertExpectations(t)
}
