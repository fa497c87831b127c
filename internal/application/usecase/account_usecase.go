package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
	"github.com/ngvyshop/chatorder-api/internal/application/ports"
	"github.com/ngvyshop/chatorder-api/internal/domain"
	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
	"github.com/ngvyshop/chatorder-api/internal/domain/repository"
	pkgjwt "github.com/ngvyshop/chatorder-api/pkg/jwt"
)

// AccessScope is the single access-resolution result applied before any core
// logic runs: who the caller is and which conversation sender their reads and
// writes are scoped to.
type AccessScope struct {
	PlatformID     string
	Role           string
	ActingSenderID string
}

// IsOwner reports whether owner-only operations are allowed.
func (s AccessScope) IsOwner() bool { return s.Role == entity.RoleOwner }

// SessionConfig for issued dashboard tokens.
type SessionConfig struct {
	JWTSecret  string
	ExpMinutes int
	Issuer     string
}

// AccountUseCase resolves caller scope, handles the OAuth callback and manages
// staff accounts.
type AccountUseCase struct {
	accounts repository.AccountRepository
	identity ports.IdentityProvider
	session  SessionConfig
	log      zerolog.Logger
}

// NewAccountUseCase wires account handling.
func NewAccountUseCase(accounts repository.AccountRepository, identity ports.IdentityProvider, session SessionConfig, log zerolog.Logger) *AccountUseCase {
	return &AccountUseCase{accounts: accounts, identity: identity, session: session, log: log}
}

// ResolveScope loads the caller's account and computes the acting sender id:
// an owner acts as their own mapped sender, staff act as their owner's.
func (uc *AccountUseCase) ResolveScope(platformID string) (*AccessScope, error) {
	if platformID == "" {
		return nil, domain.ErrUnauthorized
	}
	account, err := uc.accounts.GetByPlatformID(platformID)
	if err != nil {
		return nil, fmt.Errorf("load account %s: %w", platformID, err)
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}

	scope := &AccessScope{PlatformID: platformID, Role: account.Role}
	if account.Role == entity.RoleStaff {
		owner, err := uc.accounts.GetByPlatformID(account.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("load owner %s: %w", account.OwnerID, err)
		}
		if owner == nil {
			return nil, domain.ErrAccountNotFound
		}
		scope.ActingSenderID = owner.MappedSenderID
	} else {
		scope.ActingSenderID = account.MappedSenderID
	}
	return scope, nil
}

// LoginURL returns the identity provider's authorization URL.
func (uc *AccountUseCase) LoginURL() string {
	return uc.identity.LoginURL()
}

// HandleCallback exchanges the OAuth code, loads the profile, creates the
// account on first login (defaulting to the staff role) and issues a session
// token.
func (uc *AccountUseCase) HandleCallback(ctx context.Context, code, role string) (*dto.CallbackResponse, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: no code provided", domain.ErrInvalidInput)
	}
	if role == "" {
		role = entity.RoleStaff
	}
	if role != entity.RoleOwner && role != entity.RoleStaff {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	accessToken, err := uc.identity.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange oauth code: %w", err)
	}
	profile, err := uc.identity.FetchProfile(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	account, err := uc.accounts.GetByPlatformID(profile.ID)
	if err != nil {
		return nil, fmt.Errorf("load account %s: %w", profile.ID, err)
	}
	if account == nil {
		now := time.Now().UTC()
		account = &entity.Account{
			ID:         uuid.New().String(),
			PlatformID: profile.ID,
			Name:       profile.Name,
			Email:      profile.Email,
			Role:       role,
			Status:     "active",
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.accounts.Create(account); err != nil {
			return nil, fmt.Errorf("create account %s: %w", profile.ID, err)
		}
		uc.log.Info().Str("platform_id", profile.ID).Str("role", role).Msg("created account on first login")
	}

	sessionToken, err := pkgjwt.Generate(uc.session.JWTSecret, account.PlatformID, account.Role, uc.session.Issuer, uc.session.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	return &dto.CallbackResponse{
		AccessToken:  accessToken,
		SessionToken: sessionToken,
		User: dto.CallbackUser{
			PlatformID: account.PlatformID,
			Role:       account.Role,
		},
	}, nil
}

// SearchStaff finds staff accounts whose name matches the query.
func (uc *AccountUseCase) SearchStaff(query string) ([]dto.StaffResponse, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	accounts, err := uc.accounts.SearchStaffByName(query)
	if err != nil {
		return nil, fmt.Errorf("search staff: %w", err)
	}
	return toStaffResponses(accounts), nil
}

// AddStaff attaches a staff account to the calling owner.
func (uc *AccountUseCase) AddStaff(ownerPlatformID, staffPlatformID string) error {
	if staffPlatformID == "" {
		return domain.ErrInvalidInput
	}
	ok, err := uc.accounts.SetOwner(staffPlatformID, ownerPlatformID)
	if err != nil {
		return fmt.Errorf("attach staff %s: %w", staffPlatformID, err)
	}
	if !ok {
		return domain.ErrAccountNotFound
	}
	return nil
}

// ListStaff lists the owner's staff accounts.
func (uc *AccountUseCase) ListStaff(ownerPlatformID string) ([]dto.StaffResponse, error) {
	accounts, err := uc.accounts.ListStaffByOwner(ownerPlatformID)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return toStaffResponses(accounts), nil
}

// RemoveStaff deletes a staff account.
func (uc *AccountUseCase) RemoveStaff(staffPlatformID string) error {
	ok, err := uc.accounts.Delete(staffPlatformID)
	if err != nil {
		return fmt.Errorf("delete staff %s: %w", staffPlatformID, err)
	}
	if !ok {
		return domain.ErrAccountNotFound
	}
	return nil
}

func toStaffResponses(accounts []*entity.Account) []dto.StaffResponse {
	out := make([]dto.StaffResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, dto.StaffResponse{
			PlatformID: a.PlatformID,
			Name:       a.Name,
			Email:      a.Email,
			Status:     a.Status,
		})
	}
	return out
}
