package guests

import (
	"time"

	"github.com/google/uuid"
)

// Role separates ordinary guests from staff, who may override reservation
// ownership checks.
type Role string

const (
	RoleGuest Role = "GUEST"
	RoleStaff Role = "STAFF"
)

// Guest is an authenticated account that owns reservations.
type Guest struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	Password  string    `json:"-" gorm:"not null"` // hide in json
	Role      Role      `json:"role" gorm:"not null;default:'GUEST'"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Guest
func (Guest) TableName() string {
	return "guests"
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleGuest), string(RoleStaff):
		return true
	default:
		return false
	}
}

// IsStaff reports whether the guest account carries staff privileges.
func (g *Guest) IsStaff() bool {
	return g.Role == RoleStaff
}
