package auth

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// CanDeleteEmployees takes the caller's role explicitly so handlers and tests
// never depend on shared state for authorization decisions.
func CanDeleteEmployees(role string) bool {
	return role == RoleAdmin
}
