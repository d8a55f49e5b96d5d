// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as User, Article, Publisher and
// Newsletter, along with their validation rules and domain-specific errors.
package entity

import (
	"fmt"
	"time"
)

// Role is the closed set of user roles. Every user carries exactly one role,
// assigned at registration and immutable through the public API.
type Role string

const (
	// RoleReader can read approved articles and manage their own subscriptions.
	RoleReader Role = "reader"
	// RoleJournalist can author articles and newsletters; never approves.
	RoleJournalist Role = "journalist"
	// RoleEditor reviews, approves and deletes articles within the publishers
	// they administer, plus publisher-less articles.
	RoleEditor Role = "editor"
)

// Roles lists every valid role, in seed order.
var Roles = []Role{RoleReader, RoleJournalist, RoleEditor}

// ParseRole converts a raw string into a Role.
// Returns a ValidationError for anything outside the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleReader, RoleJournalist, RoleEditor:
		return Role(s), nil
	}
	return "", &ValidationError{
		Field:   "role",
		Message: fmt.Sprintf("must be one of reader, journalist, editor (got %q)", s),
	}
}

// Valid reports whether the role is a member of the closed set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// User represents an account in the system.
// PasswordHash is a bcrypt hash and is never serialized to API responses.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
