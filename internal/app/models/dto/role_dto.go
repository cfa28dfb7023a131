package dto

import (
	"github.com/sdemirtas/registrar/internal/app/models"
)

// RolePayload carries the role fields of an enrollment or attachment
// request. Which descriptive fields apply depends on the role type; the
// rest are ignored.
type RolePayload struct {
	Category  string `json:"category" binding:"omitempty,max=50"`
	EntryYear int    `json:"entryYear" binding:"omitempty,min=1900,max=2100"`

	// student / faculty
	Faculty    string `json:"faculty" binding:"omitempty,max=150"`
	Department string `json:"department" binding:"omitempty,max=150"`

	// student
	Major        string `json:"major" binding:"omitempty,max=150"`
	Program      string `json:"program" binding:"omitempty,max=150"`
	StudentGroup string `json:"studentGroup" binding:"omitempty,max=50"`
	Scholarship  bool   `json:"scholarship"`

	// faculty
	Title   string `json:"title" binding:"omitempty,max=100"`
	Tenured bool   `json:"tenured"`

	// staff
	Unit     string `json:"unit" binding:"omitempty,max=150"`
	JobTitle string `json:"jobTitle" binding:"omitempty,max=150"`
	Grade    string `json:"grade" binding:"omitempty,max=20"`
}

// ToModel converts the payload into a role instance of the given type.
func (p *RolePayload) ToModel(roleType models.RoleType) *models.RoleInstance {
	role := &models.RoleInstance{
		Type:      roleType,
		Category:  p.Category,
		EntryYear: p.EntryYear,
	}

	switch roleType {
	case models.RoleStudent:
		role.Student = &models.StudentAttributes{
			Faculty:      p.Faculty,
			Department:   p.Department,
			Major:        p.Major,
			Program:      p.Program,
			StudentGroup: p.StudentGroup,
			Scholarship:  p.Scholarship,
		}
	case models.RoleFaculty:
		role.Faculty = &models.FacultyAttributes{
			Faculty:    p.Faculty,
			Department: p.Department,
			Title:      p.Title,
			Tenured:    p.Tenured,
		}
	case models.RoleStaff:
		role.Staff = &models.StaffAttributes{
			Unit:     p.Unit,
			JobTitle: p.JobTitle,
			Grade:    p.Grade,
		}
	}

	return role
}

// EnrollRequest creates a person together with their first role instance.
type EnrollRequest struct {
	Person PersonPayload `json:"person" binding:"required"`
	Role   RolePayload   `json:"role"`
}

// AttachRoleRequest attaches a role instance to an existing person.
type AttachRoleRequest struct {
	Role RolePayload `json:"role"`
}

// UpdateRoleRequest carries a partial update of a role's descriptive
// fields. Status and identifier cannot be changed here.
type UpdateRoleRequest struct {
	Category *string `json:"category" binding:"omitempty,max=50"`

	Faculty    *string `json:"faculty" binding:"omitempty,max=150"`
	Department *string `json:"department" binding:"omitempty,max=150"`

	Major        *string `json:"major" binding:"omitempty,max=150"`
	Program      *string `json:"program" binding:"omitempty,max=150"`
	StudentGroup *string `json:"studentGroup" binding:"omitempty,max=50"`
	Scholarship  *bool   `json:"scholarship"`

	Title   *string `json:"title" binding:"omitempty,max=100"`
	Tenured *bool   `json:"tenured"`

	Unit     *string `json:"unit" binding:"omitempty,max=150"`
	JobTitle *string `json:"jobTitle" binding:"omitempty,max=150"`
	Grade    *string `json:"grade" binding:"omitempty,max=20"`
}

// ToUpdate converts the request into a role update.
func (r *UpdateRoleRequest) ToUpdate() models.RoleUpdate {
	return models.RoleUpdate{
		Category:     r.Category,
		Faculty:      r.Faculty,
		Department:   r.Department,
		Major:        r.Major,
		Program:      r.Program,
		StudentGroup: r.StudentGroup,
		Scholarship:  r.Scholarship,
		Title:        r.Title,
		Tenured:      r.Tenured,
		Unit:         r.Unit,
		JobTitle:     r.JobTitle,
		Grade:        r.Grade,
	}
}

// TransitionRequest asks for a status change on a role instance.
type TransitionRequest struct {
	Status    string `json:"status" binding:"required,oneof=pending active suspended inactive archived"`
	ChangedBy string `json:"changedBy" binding:"omitempty,max=100"`
	Reason    string `json:"reason" binding:"omitempty,max=1000"`
}
