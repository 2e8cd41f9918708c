package domain

// Role is the tag carried by identity tokens and stored on admin accounts.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleClient     Role = "client"
	RoleUser       Role = "user"
)

// Roles lists every role the system issues tokens for.
var Roles = []Role{RoleSuperAdmin, RoleAdmin, RoleClient, RoleUser}

// AccountKind identifies which store holds an account.
type AccountKind int

const (
	KindUnknown AccountKind = iota
	KindAdmin
	KindClient
	KindUser
)

func (k AccountKind) String() string {
	switch k {
	case KindAdmin:
		return "admin"
	case KindClient:
		return "client"
	case KindUser:
		return "user"
	default:
		return "unknown"
	}
}

// Kind maps a role to the store that holds accounts of that role.
// super_admin and admin share the admin store.
func (r Role) Kind() AccountKind {
	switch r {
	case RoleSuperAdmin, RoleAdmin:
		return KindAdmin
	case RoleClient:
		return KindClient
	case RoleUser:
		return KindUser
	}
	return KindUnknown
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r.Kind() != KindUnknown
}

// ParseAccountKind parses the :type path segment used by the approval routes.
func ParseAccountKind(s string) AccountKind {
	switch s {
	case "admin":
		return KindAdmin
	case "client":
		return KindClient
	case "user":
		return KindUser
	}
	return KindUnknown
}
