package models

import (
	"fmt"
	"time"

	"github.com/sdemirtas/registrar/internal/pkg/apperrors"
	"github.com/sdemirtas/registrar/internal/pkg/lifecycle"
)

// RoleType tags a role instance as student, faculty or staff. All three
// share the identifier scheme, the status machine and the audit trail; only
// the attribute payload differs.
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleFaculty RoleType = "faculty"
	RoleStaff   RoleType = "staff"
)

// RoleTypes lists every known role type.
func RoleTypes() []RoleType {
	return []RoleType{RoleStudent, RoleFaculty, RoleStaff}
}

// ParseRoleType validates a raw role type string.
func ParseRoleType(raw string) (RoleType, error) {
	switch RoleType(raw) {
	case RoleStudent, RoleFaculty, RoleStaff:
		return RoleType(raw), nil
	}
	return "", apperrors.NewCustomError(apperrors.ErrUnknownRoleType, fmt.Sprintf("Unknown role type '%s'", raw))
}

// Student categories
const (
	CategoryUndergraduate         = "undergraduate"
	CategoryContinuingEducation   = "continuing_education"
	CategoryPhdCandidate          = "phd_candidate"
	CategoryInternationalExchange = "international_exchange"
)

// IdentifierPrefix returns the identifier prefix for a role instance of the
// given type and category. PhD candidates get their own prefix; everything
// else is keyed by role type alone.
func IdentifierPrefix(roleType RoleType, category string) string {
	switch roleType {
	case RoleStudent:
		if category == CategoryPhdCandidate {
			return "PHD"
		}
		return "STU"
	case RoleFaculty:
		return "FAC"
	case RoleStaff:
		return "STF"
	}
	return ""
}

// StudentAttributes holds the student-specific payload of a role instance.
type StudentAttributes struct {
	Faculty      string `json:"faculty" db:"faculty"`
	Department   string `json:"department" db:"department"`
	Major        string `json:"major" db:"major"`
	Program      string `json:"program" db:"program"`
	StudentGroup string `json:"studentGroup" db:"student_group"`
	Scholarship  bool   `json:"scholarship" db:"scholarship"`
}

// FacultyAttributes holds the faculty-member payload of a role instance.
type FacultyAttributes struct {
	Faculty    string `json:"faculty" db:"faculty"`
	Department string `json:"department" db:"department"`
	Title      string `json:"title" db:"title"`
	Tenured    bool   `json:"tenured" db:"tenured"`
}

// StaffAttributes holds the staff-member payload of a role instance.
type StaffAttributes struct {
	Unit     string `json:"unit" db:"unit"`
	JobTitle string `json:"jobTitle" db:"job_title"`
	Grade    string `json:"grade" db:"grade"`
}

// RoleInstance is one typed attachment of institutional attributes and a
// lifecycle status to a person. Exactly one of the attribute payloads is
// populated, matching Type. The identifier is assigned at creation and is
// immutable afterwards.
type RoleInstance struct {
	ID         int64            `json:"id" db:"id"`
	PersonID   int64            `json:"personId" db:"person_id"`
	Type       RoleType         `json:"type"`
	Identifier string           `json:"identifier" db:"identifier"`
	Category   string           `json:"category" db:"category"`
	Status     lifecycle.Status `json:"status" db:"status"`
	EntryYear  int              `json:"entryYear" db:"entry_year"`
	CreatedAt  time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time        `json:"updatedAt" db:"updated_at"`

	Student *StudentAttributes `json:"student,omitempty"`
	Faculty *FacultyAttributes `json:"facultyMember,omitempty"`
	Staff   *StaffAttributes   `json:"staff,omitempty"`
}

// RoleView joins a role instance with the owning person's identity fields.
// It is the read model returned by listings and lookups.
type RoleView struct {
	RoleInstance
	FirstName    string `json:"firstName" db:"first_name"`
	LastName     string `json:"lastName" db:"last_name"`
	Email        string `json:"email" db:"email"`
	PlaceOfBirth string `json:"placeOfBirth" db:"place_of_birth"`
	Nationality  string `json:"nationality" db:"nationality"`
}

// RoleUpdate carries the optional fields of a partial role update. Only
// fields matching the role type's payload are applied; status and
// identifier are never touched by field updates.
type RoleUpdate struct {
	Category *string

	// student / faculty
	Faculty    *string
	Department *string

	// student
	Major        *string
	Program      *string
	StudentGroup *string
	Scholarship  *bool

	// faculty
	Title   *string
	Tenured *bool

	// staff
	Unit     *string
	JobTitle *string
	Grade    *string
}

// RoleFilters narrows a role listing. Zero values mean "no filter". Attrs
// holds payload-column filters; keys not belonging to the role type are
// ignored.
type RoleFilters struct {
	Status    string
	Category  string
	EntryYear int
	Text      string
	Attrs     map[string]string
}
