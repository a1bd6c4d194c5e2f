package models

const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

type User struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Role         string `json:"role"` // admin, staff or customer
	Mobile       string `json:"mobile"`
	PasswordHash string `json:"-"` // Never expose in JSON
	Active       bool   `json:"active"`
	TOTPEnabled  bool   `json:"totp_enabled"`
}

// SignupRequest represents the request body for customer self-registration
type SignupRequest struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"` // Required only when 2FA is enrolled
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password,omitempty"` // Optional
	Role     string `json:"role"`
	Active   *bool  `json:"active,omitempty"`
}

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return true
	}
	return false
}
