package leave

type CreateLeaveRequest struct {
	EmployeeID string `json:"employeeId" binding:"required,uuid"`
	StartDate  string `json:"startDate" binding:"required"`
	EndDate    string `json:"endDate" binding:"required"`
}

type ResolveLeaveRequest struct {
	Status string `json:"status" binding:"required"`
}

type LeaveRequestResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	TotalHours int    `json:"totalHours"`
	Status     string `json:"status"`
}

// PreviewResponse is the hypothetical post-submission figure shown before a
// request is created. Nothing is persisted on this path.
type PreviewResponse struct {
	TotalHours     int `json:"totalHours"`
	UpdatedBalance int `json:"updatedBalance"`
}

type EmployeeSummaryResponse struct {
	EmployeeID         string                 `json:"employeeId"`
	YearlyLeaveBalance int                    `json:"yearlyLeaveBalance"`
	UsedHours          int                    `json:"usedHours"`
	RemainingBalance   int                    `json:"remainingBalance"`
	Requests           []LeaveRequestResponse `json:"requests"`
}

type ReviewQueueItem struct {
	LeaveRequestResponse
	EmployeeName string `json:"employeeName,omitempty"`
	// RemainingHours is nil when the employee record is unknown; the client
	// renders that as "--".
	RemainingHours *int `json:"remainingHours,omitempty"`
}

type ReviewQueueResponse struct {
	Pending  []ReviewQueueItem `json:"pending"`
	Resolved []ReviewQueueItem `json:"resolved"`
}
