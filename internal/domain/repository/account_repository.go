package repository

import "github.com/ngvyshop/chatorder-api/internal/domain/entity"

// AccountRepository is the persistence port for dashboard accounts.
type AccountRepository interface {
	Create(a *entity.Account) error
	GetByPlatformID(platformID string) (*entity.Account, error)
	// UpdateMappedSender binds a conversation sender id to the account;
	// returns false when the account does not exist.
	UpdateMappedSender(platformID, senderID string) (bool, error)
	// SetOwner attaches a staff account to an owner.
	SetOwner(staffPlatformID, ownerPlatformID string) (bool, error)
	SearchStaffByName(query string) ([]*entity.Account, error)
	ListStaffByOwner(ownerPlatformID string) ([]*entity.Account, error)
	Delete(platformID string) (bool, error)
}
