package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User models an account in the credential store. The secret fields
// (password hash, pending tokens, session fingerprint) are never marshalled
// outward and are only populated by the repository variants that request them
// explicitly.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`

	PasswordHash string `json:"-"`

	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`

	// VerificationToken is present only while the account is unverified and a
	// verification email is pending.
	VerificationToken string `json:"-"`

	// ResetTokenHash / ResetExpiresAt are present only while a password reset
	// is pending. Only the sha256 fingerprint of the emailed token is stored.
	ResetTokenHash string     `json:"-"`
	ResetExpiresAt *time.Time `json:"-"`

	// RefreshTokenHash is the fingerprint of the single live refresh token.
	// Empty means logged out everywhere.
	RefreshTokenHash string `json:"-"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Sanitized returns a copy of the user with every secret field cleared.
// Handlers must only ever serialise sanitized copies.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	clone.VerificationToken = ""
	clone.ResetTokenHash = ""
	clone.ResetExpiresAt = nil
	clone.RefreshTokenHash = ""
	return &clone
}
