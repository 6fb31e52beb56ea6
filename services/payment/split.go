package payment

import (
	"math"

	"fixfresh/models"
)

// DefaultCommissionRate is the platform's cut of every job.
const DefaultCommissionRate = 0.20

// ComputeSplit divides a paid amount (minor currency units) between the
// platform and the provider. The commission is rounded first and the
// provider earnings are the remainder, so the two always sum back to the
// price exactly. Pure function; recomputed on demand, never cached.
func ComputeSplit(price int64, rate float64) (models.CommissionSplit, error) {
	if price <= 0 {
		return models.CommissionSplit{}, newError(CodeValidation, "price must be positive, got %d", price)
	}
	if rate < 0 || rate > 1 {
		return models.CommissionSplit{}, newError(CodeValidation, "rate must be within [0,1], got %v", rate)
	}

	commission := int64(math.Round(float64(price) * rate))
	return models.CommissionSplit{
		PlatformCommission: commission,
		ProviderEarnings:   price - commission,
		Rate:               rate,
	}, nil
}
