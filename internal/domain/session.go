package domain

// Session roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Session is the persisted login state of a storefront visitor.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
}
