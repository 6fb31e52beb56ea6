package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	userRepo "fixfresh/database/repository/user"
	"fixfresh/models"
	"fixfresh/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a participant. Clients are implicitly approved; a
// provider starts unvalidated and must pass review before accepting jobs.
func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || strings.TrimSpace(req.Name) == "" || len(req.Password) < 8 {
		return nil, ErrValidation
	}

	var validation models.ValidationStatus
	switch req.Role {
	case models.RoleClient:
		validation = models.ValidationApproved
	case models.RoleProvider:
		if req.ProviderType != models.ProviderIndividual && req.ProviderType != models.ProviderCompany {
			return nil, ErrValidation
		}
		validation = models.ValidationNotStarted
	default:
		return nil, ErrValidation
	}

	if _, err := s.Repo.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, userRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:               uuid.New().String(),
		Email:            email,
		Name:             req.Name,
		Username:         req.Username,
		Phone:            req.Phone,
		PasswordHash:     string(hash),
		Role:             req.Role,
		ProviderType:     req.ProviderType,
		ValidationStatus: validation,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.Logger.Info("registered user",
		zap.String("id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

// Authenticate verifies credentials and issues a signed token.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.Email, s.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResult{User: u, Token: token}, nil
}

// GetUserByID fetches a participant.
func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(id)
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}
