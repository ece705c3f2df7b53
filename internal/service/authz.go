package service

import "campusdir/internal/models"

// Subject is the slice of a user the authorizer decides on.
type Subject struct {
	ID         string
	Role       models.Role
	Department models.Department
}

// SubjectOf extracts the authorization-relevant fields of a user.
func SubjectOf(u *models.User) Subject {
	return Subject{ID: u.ID, Role: u.Role, Department: u.Department}
}

// IsAllowed decides whether actor may perform action on target. Rules, in
// priority order:
//
//  1. Admin may delete any HOD or Student, and read anything.
//  2. HOD may delete and read a Student of its own department.
//  3. Student may read only its own record.
//  4. Everything else is denied.
//
// A HOD never deletes another HOD; that stays Admin-only. The role's raw
// permission list is a ceiling checked first, the department and target-role
// scoping below is what actually grants.
func IsAllowed(actor Subject, action models.Action, target Subject) bool {
	if !hasPermission(actor.Role, action) {
		return false
	}

	switch actor.Role {
	case models.RoleAdmin:
		switch action {
		case models.ActionDelete:
			return target.Role == models.RoleHOD || target.Role == models.RoleStudent
		case models.ActionRead:
			return true
		}
		return false
	case models.RoleHOD:
		switch action {
		case models.ActionDelete, models.ActionRead:
			return target.Role == models.RoleStudent && target.Department == actor.Department
		}
		return false
	case models.RoleStudent:
		return action == models.ActionRead && target.ID == actor.ID
	}
	return false
}

func hasPermission(role models.Role, action models.Action) bool {
	for _, a := range role.Permissions() {
		if a == action {
			return true
		}
	}
	return false
}
