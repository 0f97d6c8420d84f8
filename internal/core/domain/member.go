package domain

import (
	"errors"
	"time"
)

// MembershipType represents the plan a gym member is subscribed to.
type MembershipType string

const (
	MembershipBasic   MembershipType = "BASIC"
	MembershipPremium MembershipType = "PREMIUM"
	MembershipVIP     MembershipType = "VIP"
)

var ErrMemberNotFound = errors.New("member not found")
var ErrDuplicateMemberEmail = errors.New("member email already exists")

// ValidMembership reports whether t is a known membership plan.
func ValidMembership(t MembershipType) bool {
	switch t {
	case MembershipBasic, MembershipPremium, MembershipVIP:
		return true
	}
	return false
}

// Member is a gym customer record managed by staff through the members CRUD.
type Member struct {
	ID               int64          `json:"id"`
	FirstName        string         `json:"first_name"`
	LastName         string         `json:"last_name"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone"`
	DateOfBirth      string         `json:"date_of_birth"`
	Address          string         `json:"address"`
	EmergencyContact string         `json:"emergency_contact"`
	EmergencyPhone   string         `json:"emergency_phone"`
	MembershipType   MembershipType `json:"membership_type"`
	StartDate        string         `json:"start_date"`
	EndDate          string         `json:"end_date"`
	Notes            string         `json:"notes,omitempty"`
	IsActive         bool           `json:"is_active"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// FullName joins first and last name for display purposes.
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
