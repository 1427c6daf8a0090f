package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the capability set a user holds
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// adminSlotValue fills AdminSlot for the admin account. The unique index on the
// column lets the store reject a second admin even under concurrent registration.
const adminSlotValue = "admin"

// User represents an account in the system
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:24" bson:"_id"`
	Name      string    `json:"name" gorm:"not null" bson:"name"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null" bson:"email"`
	Password  string    `json:"-" gorm:"not null" bson:"password"`
	Role      Role      `json:"role" gorm:"size:16;not null;default:'member'" bson:"role"`
	AdminSlot *string   `json:"-" gorm:"uniqueIndex" bson:"adminSlot,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}

// Prepare assigns an id and the admin slot before the record is first stored.
func (u *User) Prepare() {
	if u.ID == "" {
		u.ID = NewID()
	}
	if u.Role == RoleAdmin {
		slot := adminSlotValue
		u.AdminSlot = &slot
	} else {
		u.AdminSlot = nil
	}
}

// BeforeCreate is the gorm hook running Prepare.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Prepare()
	return nil
}

// UserSummary is the subset of a user embedded in task responses
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary returns the public summary of the user.
func (u User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
