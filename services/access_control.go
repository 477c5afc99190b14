package services

import (
	"fmt"
	"incident_flow_app_go/models"

	"gorm.io/gorm"
)

// AdminDepartmentName is the distinguished department whose members bypass
// ownership and department scoping entirely.
const AdminDepartmentName = "Administração"

// IsDepartmentAdmin reports whether the user belongs to the administration
// department.
func IsDepartmentAdmin(user *models.User) bool {
	return user.InDepartment(AdminDepartmentName)
}

// DepartmentScopedQuery restricts a collection query to the rows the user may
// see. Members of the administration department see everything (soft-deleted
// rows stay excluded by the default scope); everyone else sees rows they own,
// rows owned by someone sharing one of their departments, and - when the
// table has a department column (deptColumn non-empty) - rows whose
// department is among the user's own.
func DepartmentScopedQuery(dbConn *gorm.DB, user *models.User, deptColumn string) *gorm.DB {
	if user == nil {
		// Matches nothing; handlers should have rejected the request already
		return dbConn.Where("1 = 0")
	}

	if IsDepartmentAdmin(user) {
		return dbConn
	}

	deptIDs := user.DepartmentIDs()

	// Owners who share at least one department with the user
	sharedOwners := dbConn.Session(&gorm.Session{NewDB: true}).
		Table("user_departments").
		Select("user_id").
		Where("department_id IN ?", deptIDs)

	if len(deptIDs) == 0 {
		// No memberships: only rows the user owns
		return dbConn.Where("owner_id = ?", user.ID).Distinct()
	}

	if deptColumn != "" {
		return dbConn.Where(
			fmt.Sprintf("owner_id = ? OR owner_id IN (?) OR %s IN ?", deptColumn),
			user.ID, sharedOwners, deptIDs,
		).Distinct()
	}

	return dbConn.Where(
		"owner_id = ? OR owner_id IN (?)",
		user.ID, sharedOwners,
	).Distinct()
}

// CanAccessObject decides whether the user may view, change or delete a
// single owned record. Access is granted when the user owns the record,
// belongs to the administration department, belongs to the record's own
// department (objectDeptID non-nil), or shares a department with the record's
// owner.
func CanAccessObject(dbConn *gorm.DB, user *models.User, ownerID string, objectDeptID *string) (bool, error) {
	if user == nil {
		return false, nil
	}

	if user.ID == ownerID {
		return true, nil
	}

	if IsDepartmentAdmin(user) {
		return true, nil
	}

	deptIDs := user.DepartmentIDs()
	if objectDeptID != nil {
		for _, id := range deptIDs {
			if id == *objectDeptID {
				return true, nil
			}
		}
	}

	if len(deptIDs) == 0 {
		return false, nil
	}

	var overlap int64
	err := dbConn.Table("user_departments").
		Where("user_id = ? AND department_id IN ?", ownerID, deptIDs).
		Count(&overlap).Error
	if err != nil {
		return false, fmt.Errorf("failed to check department overlap: %w", err)
	}

	return overlap > 0, nil
}

// LoadUserWithDepartments fetches a user's full profile including department
// memberships. Guard checks must work against a fresh profile, not a stale
// session copy.
func LoadUserWithDepartments(dbConn *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	if err := dbConn.Preload("Departments").First(&user, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}
	return &user, nil
}
