package repositories

import (
	"github.com/sdemirtas/registrar/internal/app/models"
)

// RoleSpec describes how one role type maps onto storage. A single
// RoleRepository drives all three role types through their spec, so the
// identifier scheme, the status machine and the audit trail are implemented
// exactly once.
type RoleSpec struct {
	Type  models.RoleType
	Table string
	// AttrColumns are the type-specific payload columns, in scan order.
	AttrColumns []string
}

var roleSpecs = map[models.RoleType]RoleSpec{
	models.RoleStudent: {
		Type:        models.RoleStudent,
		Table:       "students",
		AttrColumns: []string{"faculty", "department", "major", "program", "student_group", "scholarship"},
	},
	models.RoleFaculty: {
		Type:        models.RoleFaculty,
		Table:       "faculty_members",
		AttrColumns: []string{"faculty", "department", "title", "tenured"},
	},
	models.RoleStaff: {
		Type:        models.RoleStaff,
		Table:       "staff_members",
		AttrColumns: []string{"unit", "job_title", "grade"},
	},
}

// attrScanTargets allocates the payload struct for this role type on the
// role instance and returns scan destinations in AttrColumns order.
func (s RoleSpec) attrScanTargets(role *models.RoleInstance) []any {
	switch s.Type {
	case models.RoleStudent:
		role.Student = &models.StudentAttributes{}
		a := role.Student
		return []any{&a.Faculty, &a.Department, &a.Major, &a.Program, &a.StudentGroup, &a.Scholarship}
	case models.RoleFaculty:
		role.Faculty = &models.FacultyAttributes{}
		a := role.Faculty
		return []any{&a.Faculty, &a.Department, &a.Title, &a.Tenured}
	case models.RoleStaff:
		role.Staff = &models.StaffAttributes{}
		a := role.Staff
		return []any{&a.Unit, &a.JobTitle, &a.Grade}
	}
	return nil
}

// attrValues returns the payload values in AttrColumns order for inserts.
// Missing payloads insert as zero values.
func (s RoleSpec) attrValues(role *models.RoleInstance) []any {
	switch s.Type {
	case models.RoleStudent:
		a := role.Student
		if a == nil {
			a = &models.StudentAttributes{}
		}
		return []any{a.Faculty, a.Department, a.Major, a.Program, a.StudentGroup, a.Scholarship}
	case models.RoleFaculty:
		a := role.Faculty
		if a == nil {
			a = &models.FacultyAttributes{}
		}
		return []any{a.Faculty, a.Department, a.Title, a.Tenured}
	case models.RoleStaff:
		a := role.Staff
		if a == nil {
			a = &models.StaffAttributes{}
		}
		return []any{a.Unit, a.JobTitle, a.Grade}
	}
	return nil
}

// updateSet builds the SET map for this role type's table from the non-nil
// fields of the update.
func (s RoleSpec) updateSet(update models.RoleUpdate) map[string]interface{} {
	set := map[string]interface{}{}
	if update.Category != nil {
		set["category"] = *update.Category
	}

	put := func(column string, value interface{}) {
		for _, c := range s.AttrColumns {
			if c == column {
				set[column] = value
				return
			}
		}
	}

	if update.Faculty != nil {
		put("faculty", *update.Faculty)
	}
	if update.Department != nil {
		put("department", *update.Department)
	}
	if update.Major != nil {
		put("major", *update.Major)
	}
	if update.Program != nil {
		put("program", *update.Program)
	}
	if update.StudentGroup != nil {
		put("student_group", *update.StudentGroup)
	}
	if update.Scholarship != nil {
		put("scholarship", *update.Scholarship)
	}
	if update.Title != nil {
		put("title", *update.Title)
	}
	if update.Tenured != nil {
		put("tenured", *update.Tenured)
	}
	if update.Unit != nil {
		put("unit", *update.Unit)
	}
	if update.JobTitle != nil {
		put("job_title", *update.JobTitle)
	}
	if update.Grade != nil {
		put("grade", *update.Grade)
	}

	return set
}
