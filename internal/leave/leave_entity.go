package leave

import (
	"time"

	"github.com/google/uuid"
)

// Request is a time-off request. TotalHours is frozen at creation: it is a
// fact about the originally requested range, never a live derivation.
// Cancelling a request deletes the row outright, so there is no soft-delete
// column here.
type Request struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`

	StartDate  time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate    time.Time `gorm:"type:date;not null"`
	TotalHours int       `gorm:"type:int;not null"`

	Status string `gorm:"type:varchar(20);not null;default:'pending';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Request) TableName() string {
	return "leave_requests"
}
