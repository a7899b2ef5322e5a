package http

import (
	"time"

	"github.com/stkrfx/digitaloffices-1/internal/account"
)

// RegisterRequest is the payload for POST /v1/auth/register. Admins are provisioned out of band.
type RegisterRequest struct {
	Role        string `json:"role" binding:"required,oneof=user expert organization"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DisplayName string `json:"displayName" binding:"max=100"`
}

// LoginRequest is the payload for POST /v1/auth/login.
type LoginRequest struct {
	Role     string `json:"role" binding:"required,oneof=user expert organization admin"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateMeRequest struct {
	DisplayName string `json:"displayName" binding:"required,max=100"`
}

type AccountResponse struct {
	ID          string     `json:"id"`
	Role        string     `json:"role"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"displayName,omitempty"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func NewAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:          a.ID,
		Role:        string(a.Role),
		Email:       a.Email,
		DisplayName: a.DisplayName,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		LastLoginAt: a.LastLoginAt,
	}
}

type LoginResponse struct {
	AccessToken string          `json:"accessToken"`
	Account     AccountResponse `json:"account"`
}
