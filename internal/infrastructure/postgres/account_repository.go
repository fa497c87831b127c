package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ngvyshop/chatorder-api/internal/domain"
	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
	"github.com/ngvyshop/chatorder-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implements AccountRepository (usable with pool or tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository builds the adapter.
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, platform_id, name, email, role, status, owner_id, mapped_sender_id, created_at, updated_at`

// Create persists a new account.
func (r *AccountRepo) Create(a *entity.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.PlatformID, a.Name, a.Email, a.Role, a.Status, a.OwnerID, a.MappedSenderID,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByPlatformID fetches an account by platform id, nil if absent.
func (r *AccountRepo) GetByPlatformID(platformID string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE platform_id = $1`
	var a entity.Account
	err := r.q.QueryRow(context.Background(), query, platformID).Scan(
		&a.ID, &a.PlatformID, &a.Name, &a.Email, &a.Role, &a.Status, &a.OwnerID, &a.MappedSenderID,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

// UpdateMappedSender binds a conversation sender id to the account.
func (r *AccountRepo) UpdateMappedSender(platformID, senderID string) (bool, error) {
	query := `UPDATE accounts SET mapped_sender_id = $2, updated_at = $3 WHERE platform_id = $1`
	tag, err := r.q.Exec(context.Background(), query, platformID, senderID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("update mapped sender: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetOwner attaches a staff account to an owner.
func (r *AccountRepo) SetOwner(staffPlatformID, ownerPlatformID string) (bool, error) {
	query := `UPDATE accounts SET owner_id = $2, updated_at = $3 WHERE platform_id = $1`
	tag, err := r.q.Exec(context.Background(), query, staffPlatformID, ownerPlatformID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("set account owner: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SearchStaffByName finds staff accounts by case-insensitive name match.
func (r *AccountRepo) SearchStaffByName(query string) ([]*entity.Account, error) {
	sql := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE role = $1 AND name ILIKE '%' || $2 || '%'
		ORDER BY name`
	return r.list(sql, entity.RoleStaff, query)
}

// ListStaffByOwner lists the owner's staff accounts.
func (r *AccountRepo) ListStaffByOwner(ownerPlatformID string) ([]*entity.Account, error) {
	sql := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE role = $1 AND owner_id = $2
		ORDER BY name`
	return r.list(sql, entity.RoleStaff, ownerPlatformID)
}

// Delete removes an account by platform id.
func (r *AccountRepo) Delete(platformID string) (bool, error) {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM accounts WHERE platform_id = $1`, platformID)
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AccountRepo) list(sql string, args ...any) ([]*entity.Account, error) {
	rows, err := r.q.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Account
	for rows.Next() {
		var a entity.Account
		if err := rows.Scan(
			&a.ID, &a.PlatformID, &a.Name, &a.Email, &a.Role, &a.Status, &a.OwnerID, &a.MappedSenderID,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
