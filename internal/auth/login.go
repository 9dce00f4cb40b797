// Package auth holds the login gate and the session token store.
//
// The credential check is a local stub standing in for a real
// credential-issuance service: one fixed admin phone+pin, one generic
// customer pin. It is an interface boundary, not a security mechanism.
package auth

import (
	"errors"
	"regexp"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleManager  Role = "manager"
	RoleCustomer Role = "customer"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

var phonePattern = regexp.MustCompile(`^09\d{9}$`)

const (
	adminPhone  = "09123456789"
	adminPIN    = "1234"
	customerPIN = "1111"
)

// Session describes the logged-in operator.
type Session struct {
	Phone       string   `json:"phone"`
	Name        string   `json:"name"`
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions"`
}

// Login validates the phone/pin pair against the stub credential
// table. Any failure collapses into ErrInvalidCredentials; callers get
// no hint which part was wrong.
func Login(phone, password string) (Session, error) {
	if !phonePattern.MatchString(phone) {
		return Session{}, ErrInvalidCredentials
	}

	switch {
	case phone == adminPhone && password == adminPIN:
		return Session{
			Phone:       phone,
			Name:        "System Manager",
			Role:        RoleAdmin,
			Permissions: PermissionsFor(RoleAdmin),
		}, nil
	case password == customerPIN:
		return Session{
			Phone:       phone,
			Name:        "Valued Customer",
			Role:        RoleCustomer,
			Permissions: PermissionsFor(RoleCustomer),
		}, nil
	default:
		return Session{}, ErrInvalidCredentials
	}
}

// PermissionsFor maps a role onto its menu/action permission set.
func PermissionsFor(role Role) []string {
	switch role {
	case RoleAdmin:
		return []string{
			"dashboard", "customer_view", "cards", "devices", "games_cat",
			"pos", "gifts", "customers", "staff", "finance", "reports", "settings",
		}
	case RoleOperator:
		return []string{"dashboard", "customer_view", "cards", "pos", "customers"}
	case RoleCustomer:
		return []string{"customer_view", "cards"}
	default:
		return nil
	}
}
