package job

import (
	"strings"
	"time"
)

// validateCreate rejects malformed job requests before anything is
// persisted. Price and scheduling rules mirror what the persistence layer
// can never repair after the fact.
func validateCreate(req CreateJobRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return newError(CodeValidation, "title is required")
	}
	if strings.TrimSpace(req.Address) == "" {
		return newError(CodeValidation, "address is required")
	}
	if req.Price <= 0 {
		return newError(CodeValidation, "price must be positive, got %d", req.Price)
	}
	if !req.ServiceType.Valid() {
		return newError(CodeValidation, "unknown service type %q", req.ServiceType)
	}
	if !req.Category.Valid() {
		return newError(CodeValidation, "unknown category %q", req.Category)
	}
	if req.ScheduledDate.Before(time.Now()) {
		return newError(CodeValidation, "scheduled date is in the past")
	}
	return nil
}
