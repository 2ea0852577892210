package service

import (
	"context"

	"coffeeshop/internal/entity"
	"coffeeshop/internal/repository"

	"github.com/google/uuid"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	return s.users.List(ctx, limit, offset)
}

type UserUpdateInput struct {
	FirstName *string
	LastName  *string
	Role      *entity.UserRole
}

func (u UserUpdateInput) isEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Role == nil
}

// Update applies a partial update of the mutable fields. Email and password
// have no update path here; verification state is owned by the auth flow.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UserUpdateInput) (*entity.User, error) {
	if input.isEmpty() {
		return nil, ErrInvalidInput
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.FirstName != nil {
		user.FirstName = input.FirstName
	}
	if input.LastName != nil {
		user.LastName = input.LastName
	}
	if input.Role != nil {
		user.Role = *input.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}
