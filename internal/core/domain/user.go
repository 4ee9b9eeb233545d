package domain

// Role classifies what a user is allowed to do.
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleContractor Role = "contractor"
	RoleAdmin      Role = "admin"
	RoleCreator    Role = "creator"
)

// Roles lists every valid role.
var Roles = []Role{RoleEmployee, RoleContractor, RoleAdmin, RoleCreator}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User models an account in the system. Passwords are stored and compared
// in plaintext; the source system works this way on purpose and hardening
// it is out of scope.
type User struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name" validate:"required"`
	Role                Role   `json:"role" validate:"required,oneof=employee contractor admin creator"`
	Password            string `json:"password,omitempty"`
	ForcePasswordChange bool   `json:"forcePasswordChange"`
}

// ManageableRoles returns the set of roles an actor with role r may create,
// edit, or delete. A creator manages admins and below; an admin manages
// contractors and employees; everyone else manages nobody.
func ManageableRoles(r Role) []Role {
	switch r {
	case RoleCreator:
		return []Role{RoleAdmin, RoleContractor, RoleEmployee}
	case RoleAdmin:
		return []Role{RoleContractor, RoleEmployee}
	default:
		return nil
	}
}

// CanManage reports whether an actor with role r may manage an account
// holding target. Note this is a role check only: self-management is
// rejected separately, by id, regardless of role.
func (r Role) CanManage(target Role) bool {
	for _, allowed := range ManageableRoles(r) {
		if target == allowed {
			return true
		}
	}
	return false
}
