package handlers

import (
	"net/http"

	"fixfresh/middleware"
	"fixfresh/services/earnings"
	"fixfresh/utils"

	"github.com/gin-gonic/gin"
)

// EarningsSummaryHandler reports the provider's totals. Admins may pass
// ?providerId= to inspect any provider.
func (hb *HandlerBundle) EarningsSummaryHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	sum, err := hb.Earnings.Summary(c.Request.Context(), actor, c.Query("providerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// ListEarningsHandler returns the provider's raw earning records.
func (hb *HandlerBundle) ListEarningsHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	records, err := hb.Earnings.ListEarnings(c.Request.Context(), actor, c.Query("providerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"earnings": records})
}

// RequestWithdrawalHandler creates a pending payout request.
func (hb *HandlerBundle) RequestWithdrawalHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	var req earnings.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	w, err := hb.Earnings.RequestWithdrawal(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

// ListWithdrawalsHandler returns the provider's withdrawal history.
func (hb *HandlerBundle) ListWithdrawalsHandler(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "missing actor")
		return
	}

	ws, err := hb.Earnings.ListWithdrawals(c.Request.Context(), actor, c.Query("providerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": ws})
}
