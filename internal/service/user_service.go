package service

import (
	"context"
	"net/mail"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewUserService(repo domain.Repository, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Create(ctx context.Context, dto domain.CreateUserDto) (*models.User, error) {
	if strings.TrimSpace(dto.Name) == "" {
		return nil, domain.NewFieldValidation("name", "name is required")
	}
	if !validEmail(dto.Email) {
		return nil, domain.NewFieldValidation("email", "a valid email is required")
	}

	user := &models.User{Name: dto.Name, Email: dto.Email}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *UserService) GetAll(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetUsers(ctx)
}

// Update is partial: nil fields keep their stored values.
func (s *UserService) Update(ctx context.Context, id int64, dto domain.UpdateUserDto) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		user.Name = *dto.Name
	}
	if dto.Email != nil {
		if !validEmail(*dto.Email) {
			return nil, domain.NewFieldValidation("email", "a valid email is required")
		}
		user.Email = *dto.Email
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}

// validEmail accepts a bare address only, no display name.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
