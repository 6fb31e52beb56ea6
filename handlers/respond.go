package handlers

import (
	"errors"
	"net/http"

	"fixfresh/services/earnings"
	"fixfresh/services/job"
	"fixfresh/services/payment"
	"fixfresh/services/user"
	"fixfresh/utils"

	"github.com/gin-gonic/gin"
)

// statusForCode maps engine error codes to HTTP statuses. Conflict-shaped
// outcomes (lost races, stale writes) are 409 so clients know to re-read,
// not retry blindly.
func statusForCode(code string) int {
	switch code {
	case job.CodeValidation, job.CodeOutOfRange:
		return http.StatusBadRequest
	case job.CodeNotOwner, job.CodeNotEligible, job.CodeNotValidated:
		return http.StatusForbidden
	case job.CodeNotFound:
		return http.StatusNotFound
	case job.CodeAlreadyAccepted, job.CodeInvalidTransition, job.CodeStaleWrite:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError translates any service error into a JSON error response.
func respondError(c *gin.Context, err error) {
	if code := job.ErrCode(err); code != "" {
		utils.JSONError(c, statusForCode(code), code, err.Error())
		return
	}
	if code := payment.ErrCode(err); code != "" {
		utils.JSONError(c, statusForCode(code), code, err.Error())
		return
	}

	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, user.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, user.ErrInvalidState):
		utils.JSONError(c, http.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, user.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, user.ErrForbidden), errors.Is(err, earnings.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, user.ErrValidation), errors.Is(err, earnings.ErrValidation),
		errors.Is(err, earnings.ErrInvalidAmount):
		utils.JSONError(c, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, earnings.ErrInsufficientFunds):
		utils.JSONError(c, http.StatusUnprocessableEntity, "insufficient_funds", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "An unexpected error occurred.")
	}
}
