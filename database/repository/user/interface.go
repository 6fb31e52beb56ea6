package userRepo

import (
	"errors"

	"fixfresh/models"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrConflict = errors.New("user conditional update conflict")
)

// UserRepository is the persistence boundary for users.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error

	// SetValidationStatus moves a provider's validation state from one
	// exact status to another, recording the submitted documents or the
	// reviewer's note. Returns ErrConflict if the status changed
	// concurrently.
	SetValidationStatus(id string, from, to models.ValidationStatus, docs []string, note string) (*models.User, error)

	// ListPendingValidations returns providers awaiting review.
	ListPendingValidations() ([]models.User, error)
}
