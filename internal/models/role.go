package models

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleHOD     Role = "HOD"
	RoleStudent Role = "Student"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHOD, RoleStudent:
		return true
	}
	return false
}

// Action is a permission verb checked by the authorizer.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionRead   Action = "read"
)

// Permissions returns the raw permission list for a role. The list is
// scoped further by the authorizer (department and target role); it is a
// ceiling, not a grant.
func (r Role) Permissions() []Action {
	switch r {
	case RoleAdmin:
		return []Action{ActionCreate, ActionUpdate, ActionDelete, ActionRead}
	case RoleHOD:
		return []Action{ActionCreate, ActionUpdate, ActionDelete, ActionRead}
	case RoleStudent:
		return []Action{ActionRead}
	}
	return nil
}

// Department is the closed set of departments. Admin accounts carry no
// department; the empty value stands for absent.
type Department string

const (
	DepartmentECE   Department = "ECE"
	DepartmentCSE   Department = "CSE"
	DepartmentIT    Department = "IT"
	DepartmentMECH  Department = "MECH"
	DepartmentCIVIL Department = "CIVIL"
)

// Valid reports whether d is one of the known departments.
func (d Department) Valid() bool {
	switch d {
	case DepartmentECE, DepartmentCSE, DepartmentIT, DepartmentMECH, DepartmentCIVIL:
		return true
	}
	return false
}
