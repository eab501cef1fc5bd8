package domain

import "errors"

// Credential and session errors. ErrInvalidCredentials is deliberately shared
// between "unknown email" and "wrong password" so the API exposes no
// account-existence oracle.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("please verify your email")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
)

// Account lifecycle errors.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidVerifyToken = errors.New("invalid verification token")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
)

// Authorization errors.
var (
	ErrForbidden    = errors.New("access forbidden")
	ErrSelfDemotion = errors.New("admins cannot demote their own account")
)

// Resource errors.
var ErrTripNotFound = errors.New("trip not found")
