package domain

import "github.com/google/uuid"

// Role is a user's permission tier. r1 through r4 are contributor tiers;
// r4 is the highest and moderates alongside admins.
type Role string

const (
	RoleR1    Role = "r1"
	RoleR2    Role = "r2"
	RoleR3    Role = "r3"
	RoleR4    Role = "r4"
	RoleAdmin Role = "admin"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleR1, RoleR2, RoleR3, RoleR4, RoleAdmin:
		return true
	}
	return false
}

// CanModerate reports whether the role may approve, reject, or directly
// delete words.
func (r Role) CanModerate() bool {
	return r == RoleAdmin || r == RoleR4
}

// User is a community member with moderation role and contribution score.
type User struct {
	ID                uuid.UUID
	Nickname          string
	Role              Role
	Contribution      int
	MonthContribution int
}
