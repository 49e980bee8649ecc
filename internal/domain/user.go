package domain

import (
	"context"
	"strings"
	"time"
)

// Role tags the kind of account; role specific fields hang off User.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// Plan is the subscription plan used to pick default quota limits.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanStudent    Plan = "student"
	PlanEducator   Plan = "educator"
	PlanEnterprise Plan = "enterprise"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return r, true
	}
	return "", false
}

func ParsePlan(s string) (Plan, bool) {
	switch p := Plan(strings.ToLower(strings.TrimSpace(s))); p {
	case PlanFree, PlanStudent, PlanEducator, PlanEnterprise:
		return p, true
	case "":
		return PlanFree, true
	}
	return "", false
}

// User represents a domain user object
type User struct {
	ID         string
	Email      string
	Name       string
	Role       Role
	Plan       Plan
	Quota      QuotaState
	Difficulty *DifficultyState // students only
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewUser creates a new User with the plan's default quota and, for students,
// a fresh difficulty ratchet.
func NewUser(id, email, name string, role Role, plan Plan, now time.Time) *User {
	u := &User{
		ID:        id,
		Email:     email,
		Name:      name,
		Role:      role,
		Plan:      plan,
		Quota:     NewQuotaState(DefaultLimits(role, plan), now),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if role == RoleStudent {
		state := NewDifficultyState(now)
		u.Difficulty = &state
	}
	return u
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// Validate validates the user
func (u *User) Validate() error {
	if u.ID == "" {
		return NewInvalidInputError("user id is required")
	}
	if u.Email == "" {
		return NewInvalidInputError("email is required")
	}
	if _, ok := ParseRole(string(u.Role)); !ok {
		return NewInvalidInputError("invalid user role: " + string(u.Role))
	}
	return nil
}

// UserRepository defines the interface for user data persistence.
// UpdateQuota and UpdateDifficulty are compare-and-swap writes keyed on the
// Version of the passed state; they return ErrConflict when it is stale.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	UpdateQuota(ctx context.Context, userID string, quota QuotaState) error
	UpdateDifficulty(ctx context.Context, userID string, state DifficultyState) error
}
