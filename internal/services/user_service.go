package services

import (
	"strings"
	"time"

	"fichaje_backend/internal/auth"
	"fichaje_backend/internal/models"
	"fichaje_backend/internal/repositories"
	"fichaje_backend/internal/services/dto"
	"fichaje_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Get(db *gorm.DB, userID string) (*models.User, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error)
	Delete(db *gorm.DB, userID string) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// Register creates the user and issues the session token in one go, the way
// the mobile client expects.
func (s *UserServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		HourlyRate:   req.HourlyRate,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Token: token, User: user}, nil
}

func (s *UserServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Token: token, User: user}, nil
}

func (s *UserServiceImpl) Get(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// UpdateProfile applies the present fields one by one. A password change
// re-hashes, stamps password_changed_at and re-issues the token; other
// changes keep the current token valid.
func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.UpdateProfileResponse{}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = *req.Name
	}

	if req.PhotoURL != nil {
		// An empty string clears the photo.
		user.PhotoURL = strings.TrimSpace(*req.PhotoURL)
	}

	if req.HourlyRate != nil {
		user.HourlyRate = *req.HourlyRate
	}

	if req.Email != nil && *req.Email != "" && *req.Email != user.Email {
		existing, err := s.userRepo.FindByEmail(db, *req.Email)
		if err != nil && !apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.InternalError(err)
		}
		if existing != nil {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		user.Email = *req.Email
		resp.EmailChanged = true
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if req.Password != nil && strings.TrimSpace(*req.Password) != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		changedAt := time.Now()
		if err := s.userRepo.UpdatePassword(db, user.ID, hash, changedAt); err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.PasswordHash = hash
		user.PasswordChangedAt = &changedAt
		resp.PasswordChanged = true

		token, err := auth.GenerateToken(user.ID, user.Email)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		resp.Token = token
	}

	resp.User = user
	return resp, nil
}

// Delete removes the account and all of its history. Irreversible.
func (s *UserServiceImpl) Delete(db *gorm.DB, userID string) error {
	if err := s.userRepo.Delete(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}
