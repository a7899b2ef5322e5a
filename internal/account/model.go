package account

import (
	"time"

	"github.com/stkrfx/digitaloffices-1/internal/auth"
	"github.com/stkrfx/digitaloffices-1/internal/pkg/apperror"
	"github.com/stkrfx/digitaloffices-1/internal/provider"
)

var (
	ErrNotFound           = apperror.NotFound("account not found")
	ErrEmailAlreadyUsed   = apperror.Conflict("email already used")
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "invalid email or password")
	ErrInactive           = apperror.Forbidden("account is inactive")
	ErrEmailRequired      = apperror.Validation("email is required")
	ErrPasswordTooShort   = apperror.Validation("password must be at least 8 characters")
	ErrDisplayName        = apperror.Validation("display name cannot be empty")
	ErrUnknownRole        = apperror.Validation("unknown account role")
)

// Account is an identity in one of the role tables.
type Account struct {
	ID           string
	Role         auth.Role
	Email        string
	PasswordHash string
	DisplayName  *string
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Profile is the public, cacheable view of a provider.
type Profile struct {
	ID          string        `json:"id"`
	Kind        provider.Kind `json:"kind"`
	DisplayName string        `json:"displayName"`
	CreatedAt   time.Time     `json:"createdAt"`
}

func profileOf(a *Account, kind provider.Kind) *Profile {
	p := &Profile{ID: a.ID, Kind: kind, CreatedAt: a.CreatedAt}
	if a.DisplayName != nil {
		p.DisplayName = *a.DisplayName
	}
	return p
}
