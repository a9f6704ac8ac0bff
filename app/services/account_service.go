package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/rakhshan/go-storefront/app/models"
	"github.com/rakhshan/go-storefront/app/repositories"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type AccountService struct {
	userRepo repositories.UserRepositoryImpl
}

func NewAccountService(userRepo repositories.UserRepositoryImpl) *AccountService {
	return &AccountService{userRepo: userRepo}
}

// Register creates a new account. The very first account in the store is
// granted the admin role; every later one is a plain user. The role is fixed
// at creation, there is no role-change operation.
func (s *AccountService) Register(ctx context.Context, username, password string) (*models.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	role := models.RoleUser
	if count == 0 {
		role = models.RoleAdmin
	}

	user := &models.User{
		Username: username,
		Password: password,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("AccountService: user %s registered with role %s", user.Username, user.Role)
	return user, nil
}

// Authenticate verifies a username/password pair against the stored digest.
// Unknown username, empty password and digest mismatch all collapse into the
// same ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if password == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
