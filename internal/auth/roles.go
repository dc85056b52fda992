package auth

import "strings"

// Role is the authorization level fixed per account at registration time.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// NormalizeRole maps raw role strings onto the known set. The legacy
// signup form sent "participant" for regular users; it is kept as an
// alias for "user".
func NormalizeRole(role string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case string(RoleUser), "participant":
		return RoleUser, true
	case string(RoleAdmin):
		return RoleAdmin, true
	default:
		return "", false
	}
}

func IsAdmin(role string) bool {
	normalized, ok := NormalizeRole(role)
	return ok && normalized == RoleAdmin
}

func IsUser(role string) bool {
	normalized, ok := NormalizeRole(role)
	return ok && normalized == RoleUser
}
