package domain

import (
	"errors"
	"time"
)

// Role is the closed set of profile roles. Wire values (1..4) match the
// integers persisted in the profiles collection.
type Role int

const (
	RoleOwner        Role = 1
	RoleVeterinarian Role = 2
	RolePartner      Role = 3
	RoleAdmin        Role = 4
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	return r >= RoleOwner && r <= RoleAdmin
}

func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleVeterinarian:
		return "veterinarian"
	case RolePartner:
		return "partner"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidToken       = errors.New("invalid token")
	ErrWrongTokenKind     = errors.New("wrong token kind")
	ErrMalformedSubject   = errors.New("malformed token subject")
	ErrForbidden          = errors.New("access forbidden")
)

// User is an authenticated principal: credentials plus the active flag.
// Role-specific attributes live on the one-to-one Profile.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile carries the role and the role-conditional attributes attached
// one-to-one to a User.
type Profile struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Role      Role   `json:"role"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	City      string `json:"city,omitempty"`
	Address   string `json:"address,omitempty"`
	Logo      string `json:"logo,omitempty"`

	// Veterinarian fields.
	Clinic         string `json:"clinic,omitempty"`
	Position       string `json:"position,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Experience     string `json:"experience,omitempty"`
	LicenseNumber  string `json:"license_number,omitempty"`

	// Partner fields.
	Organization string `json:"name_of_organization,omitempty"`
	PartnerType  string `json:"type,omitempty"`
	Website      string `json:"website,omitempty"`
	Description  string `json:"description,omitempty"`
}
