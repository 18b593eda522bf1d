package service

import (
	"context"

	"github.com/Torqix/aarohan-backend/internal/domain"
	"github.com/Torqix/aarohan-backend/internal/repository"
)

// userService implements the UserService interface
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// EnsureUser provisions the account on first sign-in and refreshes profile
// fields on later ones. The role stored in the database is authoritative.
func (s *userService) EnsureUser(ctx context.Context, id, email, name string) (*domain.User, error) {
	return s.userRepo.Upsert(ctx, domain.NewUser(id, email, name))
}

// GetByID retrieves a user
func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
