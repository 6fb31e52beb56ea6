package models

import "time"

// Role distinguishes the two marketplace participants plus the back-office
// reviewer who approves provider validations.
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// ProviderType describes how a provider operates.
type ProviderType string

const (
	ProviderIndividual ProviderType = "individual"
	ProviderCompany    ProviderType = "company"
)

// ValidationStatus gates a provider's ability to accept jobs. Clients are
// approved implicitly at creation; providers must earn approval.
type ValidationStatus string

const (
	ValidationNotStarted ValidationStatus = "not_started"
	ValidationPending    ValidationStatus = "pending"
	ValidationApproved   ValidationStatus = "approved"
	ValidationRejected   ValidationStatus = "rejected"
)

// User represents a platform participant.
type User struct {
	ID               string           `bson:"id" json:"id"`
	Email            string           `bson:"email" json:"email"`
	Name             string           `bson:"name" json:"name"`
	Username         string           `bson:"username" json:"username,omitempty"`
	Phone            string           `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash     string           `bson:"passwordHash" json:"-"`
	Role             Role             `bson:"role" json:"role"`
	ProviderType     ProviderType     `bson:"providerType,omitempty" json:"providerType,omitempty"`
	ValidationStatus ValidationStatus `bson:"validationStatus" json:"validationStatus"`
	ValidationDocs   []string         `bson:"validationDocs,omitempty" json:"validationDocs,omitempty"`
	ValidationNote   string           `bson:"validationNote,omitempty" json:"validationNote,omitempty"`
	CreatedAt        time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// Actor is the explicit per-call identity context passed into every engine
// operation. It is never ambient; the auth middleware builds it from the
// verified token and the user record.
type Actor struct {
	ID               string           `json:"id"`
	Role             Role             `json:"role"`
	ValidationStatus ValidationStatus `json:"validationStatus"`
}

// Validated reports whether the actor may accept jobs.
func (a Actor) Validated() bool {
	return a.ValidationStatus == ValidationApproved
}
