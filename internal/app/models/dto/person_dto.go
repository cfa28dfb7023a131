package dto

import (
	"time"

	"github.com/sdemirtas/registrar/internal/app/models"
)

const dateLayout = "2006-01-02"

// PersonPayload carries the identity fields of an enrollment or person
// creation request. Email and phone formats are the caller's concern beyond
// the basic shape checks here.
type PersonPayload struct {
	FirstName    string `json:"firstName" binding:"required,min=2,max=100"`
	LastName     string `json:"lastName" binding:"required,min=2,max=100"`
	DateOfBirth  string `json:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	PlaceOfBirth string `json:"placeOfBirth" binding:"required,max=150"`
	Nationality  string `json:"nationality" binding:"required,max=100"`
	Gender       string `json:"gender" binding:"required,oneof=male female other"`
	Email        string `json:"email" binding:"required,email,max=150"`
	Phone        string `json:"phone" binding:"omitempty,max=30"`
}

// ToModel converts the payload into a person model.
func (p *PersonPayload) ToModel() (*models.Person, error) {
	dob, err := time.Parse(dateLayout, p.DateOfBirth)
	if err != nil {
		return nil, err
	}

	return &models.Person{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		DateOfBirth:  dob,
		PlaceOfBirth: p.PlaceOfBirth,
		Nationality:  p.Nationality,
		Gender:       models.Gender(p.Gender),
		Email:        p.Email,
		Phone:        p.Phone,
	}, nil
}

// UpdatePersonRequest carries a partial person update. Absent fields stay
// unchanged.
type UpdatePersonRequest struct {
	FirstName    *string `json:"firstName" binding:"omitempty,min=2,max=100"`
	LastName     *string `json:"lastName" binding:"omitempty,min=2,max=100"`
	DateOfBirth  *string `json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02"`
	PlaceOfBirth *string `json:"placeOfBirth" binding:"omitempty,max=150"`
	Nationality  *string `json:"nationality" binding:"omitempty,max=100"`
	Gender       *string `json:"gender" binding:"omitempty,oneof=male female other"`
	Email        *string `json:"email" binding:"omitempty,email,max=150"`
	Phone        *string `json:"phone" binding:"omitempty,max=30"`
}

// ToUpdate converts the request into a person update.
func (r *UpdatePersonRequest) ToUpdate() (models.PersonUpdate, error) {
	update := models.PersonUpdate{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		PlaceOfBirth: r.PlaceOfBirth,
		Nationality:  r.Nationality,
		Email:        r.Email,
		Phone:        r.Phone,
	}

	if r.DateOfBirth != nil {
		dob, err := time.Parse(dateLayout, *r.DateOfBirth)
		if err != nil {
			return models.PersonUpdate{}, err
		}
		update.DateOfBirth = &dob
	}
	if r.Gender != nil {
		g := models.Gender(*r.Gender)
		update.Gender = &g
	}

	return update, nil
}
