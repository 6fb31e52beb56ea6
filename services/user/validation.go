package user

import (
	"context"
	"errors"

	userRepo "fixfresh/database/repository/user"
	"fixfresh/models"

	"go.uber.org/zap"
)

// SubmitValidation queues a provider for back-office review. Allowed from
// not_started and, after a rejection, again from rejected.
func (s *DefaultUserService) SubmitValidation(ctx context.Context, actor models.Actor, docs []string) (*models.User, error) {
	if actor.Role != models.RoleProvider {
		return nil, ErrForbidden
	}
	if len(docs) == 0 {
		return nil, ErrValidation
	}

	from := actor.ValidationStatus
	if from != models.ValidationNotStarted && from != models.ValidationRejected {
		return nil, ErrInvalidState
	}

	u, err := s.Repo.SetValidationStatus(actor.ID, from, models.ValidationPending, docs, "")
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if errors.Is(err, userRepo.ErrConflict) {
		return nil, ErrInvalidState
	}
	if err != nil {
		return nil, err
	}

	s.Logger.Info("provider validation submitted", zap.String("providerId", u.ID))
	return u, nil
}

// ReviewValidation resolves a pending provider to approved or rejected.
// Only reviewers may call this.
func (s *DefaultUserService) ReviewValidation(ctx context.Context, actor models.Actor, providerID string, approve bool, note string) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	to := models.ValidationRejected
	if approve {
		to = models.ValidationApproved
	}

	u, err := s.Repo.SetValidationStatus(providerID, models.ValidationPending, to, nil, note)
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if errors.Is(err, userRepo.ErrConflict) {
		return nil, ErrInvalidState
	}
	if err != nil {
		return nil, err
	}

	s.Logger.Info("provider validation reviewed",
		zap.String("providerId", u.ID), zap.Bool("approved", approve))
	return u, nil
}

// ListPendingValidations returns the review queue.
func (s *DefaultUserService) ListPendingValidations(ctx context.Context, actor models.Actor) ([]models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.Repo.ListPendingValidations()
}
