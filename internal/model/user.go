package model

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	IsAgent      bool
	Role         Role
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID   int64
	Username string
	Role     Role
	IsAgent  bool
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
