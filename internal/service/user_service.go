package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskhub/internal/auth"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

const bcryptCost = 10

// timingDummyHash is compared against when login hits an unknown email, so
// the not-found path costs one bcrypt verification just like the found path.
var timingDummyHash, _ = bcrypt.GenerateFromPassword([]byte("taskhub-timing-equalizer"), bcryptCost)

// UserService handles registration, login and token-to-user resolution.
type UserService interface {
	Register(ctx context.Context, name, email, password, linkedinURL string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	VerifyToken(ctx context.Context, token string) (*model.User, error)
}

type userService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, jwtService *auth.JWTService) UserService {
	return &userService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user with hashed password.
func (s *userService) Register(ctx context.Context, name, email, password, linkedinURL string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		LinkedinURL:  linkedinURL,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns a signed bearer token. Unknown
// email and wrong password are deliberately indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == gorm.ErrRecordNotFound {
		// Burn a bcrypt comparison so timing does not reveal whether the
		// email exists.
		_ = bcrypt.CompareHashAndPassword(timingDummyHash, []byte(password))
		return "", apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.ID.String())
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

// VerifyToken resolves a bearer token to its user. A still-valid token whose
// user record has been deleted is treated as invalid.
func (s *userService) VerifyToken(ctx context.Context, token string) (*model.User, error) {
	userID, err := s.jwtService.Verify(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err == gorm.ErrRecordNotFound {
		return nil, apperrors.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	return user, nil
}
