package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user role
type UserRole string

const (
	UserRoleCustomer UserRole = "CUSTOMER"
	UserRoleVendor   UserRole = "VENDOR"
	UserRoleAdmin    UserRole = "ADMIN"
)

// ParseUserRole validates a role string from a request
func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case UserRoleCustomer, UserRoleVendor, UserRoleAdmin:
		return UserRole(s), true
	}
	return "", false
}

// User represents a marketplace account. The ledger consumes identity plus
// the referral linkage fields; the rest of the profile is owned by the auth
// collaborator.
type User struct {
	ID           uuid.UUID   `json:"id"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         UserRole    `json:"role"`
	CompanyName  null.String `json:"companyName,omitempty"`
	IsActive     bool        `json:"isActive"`
	ReferralCode null.String `json:"referralCode,omitempty"`
	ReferredBy   *uuid.UUID  `json:"referredBy,omitempty"`
	ReferralUsed bool        `json:"referralUsed"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// RegisterInput represents input for user registration
type RegisterInput struct {
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role" binding:"required"`
	CompanyName  string `json:"companyName,omitempty"`
	ReferralCode string `json:"referralCode,omitempty"`
}

// LoginInput represents input for login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ValidateReferralInput represents input for the referral pre-check endpoint
type ValidateReferralInput struct {
	Code string `json:"code" binding:"required"`
}

// ReferralValidation is the non-mutating referral pre-check decision
type ReferralValidation struct {
	Valid        bool   `json:"valid"`
	Message      string `json:"message"`
	ReferrerName string `json:"referrerName,omitempty"`
}

// AuthResponse carries tokens plus the registered/authenticated user
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}
