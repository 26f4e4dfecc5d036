package domain

// EnforceRequest is the role-gate question: may this role perform this
// action on this resource.
type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}
