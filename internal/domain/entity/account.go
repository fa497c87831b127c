package entity

import "time"

// Roles valid for Account.
const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

// Account is a dashboard user tied to a platform identity.
// MappedSenderID links the account to a conversation sender so its orders can
// be scoped; for staff, scoping goes through the owning account instead.
type Account struct {
	ID             string
	PlatformID     string // Facebook user id
	Name           string
	Email          string
	Role           string // RoleOwner | RoleStaff
	Status         string // active, inactive
	OwnerID        string // platform id of the owning account (staff only)
	MappedSenderID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
