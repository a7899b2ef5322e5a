package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stkrfx/digitaloffices-1/internal/auth"
	"github.com/stkrfx/digitaloffices-1/internal/cache"
	"github.com/stkrfx/digitaloffices-1/internal/provider"
)

const minPasswordLength = 8

// ProfileCache stores provider profiles. *cache.JSONCache implements it.
type ProfileCache interface {
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}

type Service interface {
	Register(ctx context.Context, role auth.Role, email, password, displayName string) (*Account, error)
	Login(ctx context.Context, role auth.Role, email, password string) (*Account, error)
	GetByID(ctx context.Context, role auth.Role, id string) (*Account, error)
	UpdateProfile(ctx context.Context, role auth.Role, id, displayName string) (*Account, error)
	// GetProviderProfile serves the public profile of an expert or organization, read-through cached.
	GetProviderProfile(ctx context.Context, owner provider.Owner) (*Profile, error)
}

type service struct {
	repos  Repositories
	hasher auth.PasswordHasher
	cache  ProfileCache
	log    logrus.FieldLogger
}

func NewService(repos Repositories, hasher auth.PasswordHasher, cache ProfileCache, log logrus.FieldLogger) Service {
	return &service{repos: repos, hasher: hasher, cache: cache, log: log}
}

func (s *service) Register(ctx context.Context, role auth.Role, email, password, displayName string) (*Account, error) {
	repo, err := s.repos.For(role)
	if err != nil {
		return nil, err
	}

	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" {
		return nil, ErrEmailRequired
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := repo.FindByEmail(ctx, cleanEmail); err == nil {
		return nil, ErrEmailAlreadyUsed
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var name *string
	if d := strings.TrimSpace(displayName); d != "" {
		name = &d
	}

	a := &Account{
		Role:         role,
		Email:        cleanEmail,
		PasswordHash: hash,
		DisplayName:  name,
		IsActive:     true,
	}
	if err := repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Login(ctx context.Context, role auth.Role, email, password string) (*Account, error) {
	repo, err := s.repos.For(role)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	a, err := repo.FindByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch account by email: %w", err)
	}
	if err := s.hasher.Compare(a.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !a.IsActive {
		return nil, ErrInactive
	}

	now := time.Now().UTC()
	if err := repo.UpdateLastLogin(ctx, a.ID, now); err != nil {
		s.log.WithError(err).WithField("account_id", a.ID).Warn("failed to record last login")
	} else {
		a.LastLoginAt = &now
	}
	return a, nil
}

func (s *service) GetByID(ctx context.Context, role auth.Role, id string) (*Account, error) {
	repo, err := s.repos.For(role)
	if err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, role auth.Role, id, displayName string) (*Account, error) {
	repo, err := s.repos.For(role)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(displayName)
	if name == "" {
		return nil, ErrDisplayName
	}

	a, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.DisplayName = &name
	if err := repo.Update(ctx, a); err != nil {
		return nil, err
	}

	if owner, err := provider.FromRole(string(role), id); err == nil {
		// The row is already written; a failed delete leaves a stale profile until the TTL expires.
		key := profileKey(owner)
		if err := s.cache.Delete(ctx, key); err != nil {
			s.log.WithError(err).WithField("key", key).Warn("profile cache invalidation failed")
		}
	}
	return a, nil
}

func (s *service) GetProviderProfile(ctx context.Context, owner provider.Owner) (*Profile, error) {
	if owner.IsZero() {
		return nil, ErrNotFound
	}
	key := profileKey(owner)

	var cached Profile
	switch err := s.cache.Get(ctx, key, &cached); {
	case err == nil:
		return &cached, nil
	case !errors.Is(err, cache.ErrMiss):
		s.log.WithError(err).WithField("key", key).Warn("profile cache read failed")
	}

	role := auth.RoleExpert
	if owner.IsOrganization() {
		role = auth.RoleOrganization
	}
	repo, err := s.repos.For(role)
	if err != nil {
		return nil, err
	}
	a, err := repo.FindByID(ctx, owner.ID())
	if err != nil {
		return nil, err
	}
	if !a.IsActive {
		return nil, ErrNotFound
	}

	p := profileOf(a, owner.Kind())
	if err := s.cache.Set(ctx, key, p); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("profile cache write failed")
	}
	return p, nil
}

func profileKey(o provider.Owner) string {
	return string(o.Kind()) + ":" + o.ID()
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
