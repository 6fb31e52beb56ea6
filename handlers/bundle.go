package handlers

import (
	userRepoPkg "fixfresh/database/repository/user"
	"fixfresh/services/earnings"
	"fixfresh/services/job"
	"fixfresh/services/notification"
	"fixfresh/services/payment"
	"fixfresh/services/storage"
	"fixfresh/services/user"

	"go.uber.org/zap"
)

// HandlerBundle carries the wired services for route registration.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	Users    user.UserService
	Jobs     job.JobService
	Payments payment.PaymentService
	Earnings earnings.EarningsService
	Storage  storage.StorageService
	Events   notification.Subscriber

	Logger *zap.Logger
}
