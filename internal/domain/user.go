package domain

import "time"

// Role determines which surfaces of the client a user can reach.
type Role string

const (
	RoleCustomer        Role = "customer"
	RoleServiceProvider Role = "serviceProvider"
	RoleAdmin           Role = "admin"
)

// User is the client-side copy of an account record. It is always fetched
// from the API and never mutated locally.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user may reach admin surfaces.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
