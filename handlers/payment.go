package handlers

import (
	"net/http"

	"fixfresh/models"
	"fixfresh/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentConfirmedHandler is the gateway callback. The paid amount in the
// payload is authoritative; the commission split is computed and recorded
// from it. Replays of the same confirmation are rejected as conflicts.
func (hb *HandlerBundle) PaymentConfirmedHandler(c *gin.Context) {
	var conf models.PaymentConfirmation
	if err := c.ShouldBindJSON(&conf); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	j, err := hb.Payments.OnPaymentConfirmed(c.Request.Context(), conf)
	if err != nil {
		hb.Logger.Warn("payment confirmation rejected",
			zap.String("jobId", conf.JobID), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobId": j.ID,
		"split": j.Split,
	})
}
