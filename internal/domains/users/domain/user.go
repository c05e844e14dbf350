package domain

import (
	"errors"
	"strings"
)

// Role partitions what a user may do: customers own carts, managers own
// the catalog, admins own bulk purges.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleManager  Role = "Manager"
	RoleAdmin    Role = "Admin"
)

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrWeakPassword  = errors.New("password must be at least 4 characters")
	ErrInvalidRole   = errors.New("user role is invalid")
)

// User represents a registered account.
type User struct {
	ID       int64
	Username string
	Name     string
	Surname  string
	Email    string
	Password string
	Role     Role
}

// NewUser builds a user ensuring required invariants; an empty role
// defaults to customer.
func NewUser(id int64, username, password string, role Role) (*User, error) {
	user := &User{ID: id}
	if err := user.SetUsername(username); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := user.SetRole(role); err != nil {
		return nil, err
	}
	return user, nil
}

// SetUsername trims and validates the username.
func (u *User) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	u.Username = username
	return nil
}

// SetPassword validates basic password strength.
func (u *User) SetPassword(password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 4 {
		return ErrWeakPassword
	}
	u.Password = password
	return nil
}

// SetRole accepts only known roles, defaulting empty to customer.
func (u *User) SetRole(role Role) error {
	if role == "" {
		role = RoleCustomer
	}
	switch role {
	case RoleCustomer, RoleManager, RoleAdmin:
		u.Role = role
		return nil
	default:
		return ErrInvalidRole
	}
}

// UpdateProfile applies optional profile fields and validates email if present.
func (u *User) UpdateProfile(name, surname, email string) error {
	u.Name = strings.TrimSpace(name)
	u.Surname = strings.TrimSpace(surname)
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// CheckPassword compares the stored password with the supplied credentials.
func (u *User) CheckPassword(password string) bool {
	return strings.TrimSpace(password) != "" && u.Password == strings.TrimSpace(password)
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetUsername(u.Username); err != nil {
		return err
	}
	if err := u.SetPassword(u.Password); err != nil {
		return err
	}
	if err := u.SetRole(u.Role); err != nil {
		return err
	}
	return u.UpdateProfile(u.Name, u.Surname, u.Email)
}
