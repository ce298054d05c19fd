package domain

type UserRole string

const (
	UserRoleCustomer UserRole = "CUSTOMER"
	UserRoleAdmin    UserRole = "ADMIN"
)

type User struct {
	ID           int32    `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone,omitempty"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	CreatedOn    string   `json:"created_on"`
}

// Principal is the authenticated identity attached to every request by the
// auth middleware. Services trust it and perform role checks inline.
type Principal struct {
	UserID int32
	Role   UserRole
}

// IsAdmin reports whether the principal may perform admin-only operations.
func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}
