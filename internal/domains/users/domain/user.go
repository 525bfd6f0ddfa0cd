package domain

import (
	"errors"
	"strings"
)

// Role gates access to catalog maintenance, order entry, and reports.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleInventory Role = "inventory"
	RoleSales     Role = "sales"
)

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrUnknownRole   = errors.New("unknown role")
)

// RoleFromString parses a role name case-insensitively.
func RoleFromString(value string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleInventory:
		return RoleInventory, nil
	case RoleSales:
		return RoleSales, nil
	default:
		return "", ErrUnknownRole
	}
}

// CanManageProducts reports whether the role may add or restock products.
func (r Role) CanManageProducts() bool {
	return r == RoleAdmin || r == RoleInventory
}

// CanManageOrders reports whether the role may submit orders.
func (r Role) CanManageOrders() bool {
	return r == RoleAdmin || r == RoleSales
}

// CanViewReport reports whether the role may view the given report kind.
// Admin sees everything; sales and inventory see only their own report.
func (r Role) CanViewReport(kind string) bool {
	kind = strings.ToLower(strings.TrimSpace(kind))
	switch r {
	case RoleAdmin:
		return true
	case RoleSales:
		return kind == "sales"
	case RoleInventory:
		return kind == "inventory"
	default:
		return false
	}
}

// User is an operator account with a single role.
type User struct {
	ID       int64
	Username string
	Password string
	Role     Role
}

// NewUser builds a user ensuring required invariants.
func NewUser(id int64, username, password string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if strings.TrimSpace(password) == "" {
		return nil, ErrEmptyPassword
	}
	if _, err := RoleFromString(string(role)); err != nil {
		return nil, err
	}
	return &User{ID: id, Username: username, Password: password, Role: role}, nil
}

// CheckPassword compares the stored password with the supplied credentials.
func (u *User) CheckPassword(password string) bool {
	return u.Password != "" && u.Password == password
}
