package models

import "time"

// Gender enum for the persons table
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Person defines the canonical identity record, independent of any
// institutional role. Identity uniqueness is the (lower(first_name),
// lower(last_name), date_of_birth) triple plus a globally unique email,
// both enforced by constraints on the persons table.
type Person struct {
	ID           int64     `json:"id" db:"id"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	DateOfBirth  time.Time `json:"dateOfBirth" db:"date_of_birth"`
	PlaceOfBirth string    `json:"placeOfBirth" db:"place_of_birth"`
	Nationality  string    `json:"nationality" db:"nationality"`
	Gender       Gender    `json:"gender" db:"gender"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// PersonSummary is a person row decorated with role presence flags, produced
// by the person listing query.
type PersonSummary struct {
	Person
	IsStudent bool `json:"isStudent" db:"is_student"`
	IsFaculty bool `json:"isFaculty" db:"is_faculty"`
	IsStaff   bool `json:"isStaff" db:"is_staff"`
}

// PersonWithRoles aggregates a person with every role instance attached to
// them, one list per role type.
type PersonWithRoles struct {
	Person
	Roles map[RoleType][]*RoleInstance `json:"roles"`
}

// PersonUpdate carries the optional fields of a partial person update. Nil
// fields are left untouched.
type PersonUpdate struct {
	FirstName    *string
	LastName     *string
	DateOfBirth  *time.Time
	PlaceOfBirth *string
	Nationality  *string
	Gender       *Gender
	Email        *string
	Phone        *string
}
