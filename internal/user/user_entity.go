package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is stored as a single jsonb column. Updates must merge it
// key-by-key before saving; the column is replaced wholesale on write.
type Address struct {
	AddressLine1 string `json:"addressLine1,omitempty"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zipCode,omitempty"`
}

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Password string    `gorm:"type:text;not null"`

	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Email     string `gorm:"type:text"`
	Role      string `gorm:"type:varchar(20);not null;default:'employee'"`

	ManagerID          *uuid.UUID `gorm:"type:uuid"`
	YearlyLeaveBalance int        `gorm:"type:int;not null;default:0"`
	Salary             int        `gorm:"type:int;not null;default:0"`
	Address            Address    `gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
)
