package service

import (
	"errors"

	"moreview/internal/dto"
	"moreview/internal/middleware/auth"
	"moreview/internal/models"
	"moreview/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserService interface {
	List() ([]dto.UserResponse, error)
	GetProfile(userID string) (*dto.UserResponse, error)
	UpdateProfile(userID string, req dto.UpdateProfileDTO) (*dto.UserResponse, error)
	CreateAdmin(req dto.AdminCreateDTO) (*dto.UserResponse, error)
	Deactivate(userID string) error
}

type userService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
}

func NewUserService(userRepo repository.UserRepository, refreshTokenRepo repository.RefreshTokenRepository) UserService {
	return &userService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// List returns every account (admin-only at the route level).
func (s *userService) List() ([]dto.UserResponse, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.FromModelToUserResponse(&users[i]))
	}
	return responses, nil
}

func (s *userService) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

// UpdateProfile edits the user's name and email. The save bumps updated_at.
func (s *userService) UpdateProfile(userID string, req dto.UpdateProfileDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return dto.FromModelToUserResponse(user), nil
}

// CreateAdmin creates a new superuser account. The role is forced regardless
// of input; the password is hashed before persisting.
func (s *userService) CreateAdmin(req dto.AdminCreateDTO) (*dto.UserResponse, error) {
	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, ErrNameInUse
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:          uuid.New().String(),
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    hashedPassword,
		IsActive:    true,
		IsSuperuser: true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return dto.FromModelToUserResponse(user), nil
}

// Deactivate soft-deletes the account and revokes its sessions. The row is
// kept so reviews and reports stay attributable.
func (s *userService) Deactivate(userID string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	user.IsActive = false
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	return s.refreshTokenRepo.RevokeAllForUser(userID)
}
