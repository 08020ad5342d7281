package domain

// Role represents user role in the system
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// ValidRole reports whether s names a known role
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// AuthUser is the resolved identity of an authenticated caller,
// as extracted from a validated access token.
type AuthUser struct {
	UserID   uint
	Username string
	Role     Role
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
