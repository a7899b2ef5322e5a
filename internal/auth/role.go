package auth

// Role is the closed set of account kinds. Each role has its own identity table.
type Role string

const (
	RoleUser         Role = "user"
	RoleExpert       Role = "expert"
	RoleOrganization Role = "organization"
	RoleAdmin        Role = "admin"
)

// Roles lists every role in a fixed order.
var Roles = []Role{RoleUser, RoleExpert, RoleOrganization, RoleAdmin}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleExpert, RoleOrganization, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
