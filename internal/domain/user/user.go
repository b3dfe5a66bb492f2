package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleIndividual Role = "individual"
	RoleCompany    Role = "company"
	RoleStudent    Role = "student"
)

func (r Role) Valid() bool {
	switch r {
	case RoleIndividual, RoleCompany, RoleStudent:
		return true
	}
	return false
}

type User struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email                  string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password               string    `gorm:"not null;column:password" json:"-"`
	FirstName              string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName               string    `gorm:"not null;column:last_name" json:"last_name"`
	Role                   Role      `gorm:"not null;default:individual;column:role" json:"role"`
	Language               string    `gorm:"not null;default:en;column:language" json:"language"`
	Region                 *string   `gorm:"index;column:region" json:"region,omitempty"`
	IsRegistrationComplete bool      `gorm:"not null;default:false;column:is_registration_complete" json:"is_registration_complete"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleIndividual
	}
	if u.Language == "" {
		u.Language = "en"
	}
	return nil
}

// DisplayName is "First Last", with "User" standing in for a blank first name.
func (u *User) DisplayName() string {
	first := strings.TrimSpace(u.FirstName)
	if first == "" {
		first = "User"
	}
	return strings.TrimSpace(first + " " + strings.TrimSpace(u.LastName))
}

// RegionKey returns the normalized region or "" when unset.
func (u *User) RegionKey() string {
	if u.Region == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*u.Region))
}
