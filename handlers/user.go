package handlers

import (
	"net/http"

	"fixfresh/middleware"
	"fixfresh/services/user"
	"fixfresh/utils"

	"github.com/gin-gonic/gin"
)

// RegisterUserHandler creates a client or provider account.
func (hb *HandlerBundle) RegisterUserHandler(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	u, err := hb.Users.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// AuthenticateUserHandler signs a participant in.
func (hb *HandlerBundle) AuthenticateUserHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	result, err := hb.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MeHandler returns the authenticated participant's record.
func (hb *HandlerBundle) MeHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	u, err := hb.Users.GetUserByID(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// SubmitValidationHandler queues the provider for back-office review.
func (hb *HandlerBundle) SubmitValidationHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	var req struct {
		Documents []string `json:"documents" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	u, err := hb.Users.SubmitValidation(c.Request.Context(), actor, req.Documents)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ListValidationsHandler returns providers awaiting review.
func (hb *HandlerBundle) ListValidationsHandler(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	pending, err := hb.Users.ListPendingValidations(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending})
}

// ReviewValidationHandler approves or rejects a pending provider.
func (hb *HandlerBundle) ReviewValidationHandler(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	var req struct {
		Approve bool   `json:"approve"`
		Note    string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	u, err := hb.Users.ReviewValidation(c.Request.Context(), actor, c.Param("id"), req.Approve, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
