package domain

// Operation names an action subject to role-based access control.
type Operation string

const (
	OpCreateEmployee Operation = "create_employee"
	OpListAllUsers   Operation = "list_all_users"
	OpListEmployees  Operation = "list_employees"
	OpManageEmployee Operation = "manage_employee"
)

// permissions is the single source of truth for the access-control matrix.
// Bootstrap registration (SuperUser/Manager), forgot-password and self
// reset-password are not role-gated and intentionally have no entry here.
var permissions = map[Operation][]Role{
	OpCreateEmployee: {RoleManager},
	OpListAllUsers:   {RoleSuperUser},
	OpListEmployees:  {RoleManager},
	OpManageEmployee: {RoleManager},
}

// Can reports whether the role is allowed to perform the operation.
func (r Role) Can(op Operation) bool {
	for _, allowed := range permissions[op] {
		if allowed == r {
			return true
		}
	}
	return false
}
