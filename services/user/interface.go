package user

import (
	"context"
	"time"

	userRepo "fixfresh/database/repository/user"
	"fixfresh/models"

	"go.uber.org/zap"
)

// RegisterRequest carries a new participant's details. ProviderType is
// required for providers and ignored for clients.
type RegisterRequest struct {
	Email        string              `json:"email" binding:"required,email"`
	Name         string              `json:"name" binding:"required"`
	Username     string              `json:"username"`
	Phone        string              `json:"phone"`
	Password     string              `json:"password" binding:"required,min=8"`
	Role         models.Role         `json:"role" binding:"required"`
	ProviderType models.ProviderType `json:"providerType"`
}

// AuthResult is a successful sign-in.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService manages participants and the provider validation workflow.
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// SubmitValidation moves a provider into the pending review queue.
	SubmitValidation(ctx context.Context, actor models.Actor, docs []string) (*models.User, error)
	// ReviewValidation approves or rejects a pending provider.
	ReviewValidation(ctx context.Context, actor models.Actor, providerID string, approve bool, note string) (*models.User, error)
	ListPendingValidations(ctx context.Context, actor models.Actor) ([]models.User, error)
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	TokenTTL time.Duration
	Logger   *zap.Logger
}

// NewDefaultUserService wires the user service.
func NewDefaultUserService(repo userRepo.UserRepository, tokenTTL time.Duration, logger *zap.Logger) *DefaultUserService {
	if tokenTTL == 0 {
		tokenTTL = 72 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultUserService{Repo: repo, TokenTTL: tokenTTL, Logger: logger}
}
