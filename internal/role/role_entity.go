package role

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is an organizational job title (e.g. "Payroll Specialist"), not an
// access-control role. Access roles live in the rbac package.
type Role struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name        string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Role) TableName() string {
	return "roles"
}
