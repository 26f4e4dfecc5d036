package user

type CreateUserRequest struct {
	Username           string        `json:"username" binding:"required"`
	Password           string        `json:"password" binding:"required,min=8"`
	FirstName          string        `json:"firstName" binding:"required"`
	LastName           string        `json:"lastName" binding:"required"`
	Email              string        `json:"email" binding:"required,email"`
	Role               string        `json:"role" binding:"omitempty,oneof=employee hr"`
	ManagerID          *string       `json:"managerId" binding:"omitempty,uuid"`
	YearlyLeaveBalance int           `json:"yearlyLeaveBalance" binding:"gte=0"`
	Salary             int           `json:"salary" binding:"gte=0"`
	Address            *AddressPatch `json:"address"`
}

// UpdateUserRequest is a shallow merge: only non-nil fields are written.
// Address is the exception and merges key-by-key into the stored value.
type UpdateUserRequest struct {
	FirstName          *string       `json:"firstName"`
	LastName           *string       `json:"lastName"`
	Email              *string       `json:"email" binding:"omitempty,email"`
	Role               *string       `json:"role" binding:"omitempty,oneof=employee hr"`
	ManagerID          *string       `json:"managerId" binding:"omitempty,uuid"`
	YearlyLeaveBalance *int          `json:"yearlyLeaveBalance" binding:"omitempty,gte=0"`
	Salary             *int          `json:"salary" binding:"omitempty,gte=0"`
	Address            *AddressPatch `json:"address"`
}

type AddressPatch struct {
	AddressLine1 *string `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	ZipCode      *string `json:"zipCode"`
}

type UserResponse struct {
	ID                 string  `json:"id"`
	Username           string  `json:"username"`
	FirstName          string  `json:"firstName"`
	LastName           string  `json:"lastName"`
	Email              string  `json:"email"`
	Role               string  `json:"role"`
	ManagerID          *string `json:"managerId,omitempty"`
	YearlyLeaveBalance int     `json:"yearlyLeaveBalance"`
	Salary             int     `json:"salary"`
	Address            Address `json:"address"`
	CreatedAt          string  `json:"createdAt"`
}

// UserOption is the slim shape for picker widgets (manager selection).
type UserOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
