package state

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"rhystmorgan/abook/internal/models"
)

var ErrNameRequired = errors.New("name required")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Draft is the record held by the form until it is saved or discarded.
type Draft struct {
	ID      models.ContactID
	Name    string `validate:"required"`
	IsFav   bool
	Methods []models.ContactMethod
}

// NewDraft seeds a blank contact with one empty phone entry. isFav carries
// over the collection mode so adding from the favorites view pre-flags it.
func NewDraft(isFav bool) Draft {
	return Draft{
		IsFav:   isFav,
		Methods: []models.ContactMethod{{Type: models.MethodPhone}},
	}
}

func DraftFrom(contact models.Contact) Draft {
	clone := contact.Clone()
	return Draft{
		ID:      clone.ID,
		Name:    clone.Name,
		IsFav:   clone.IsFav,
		Methods: clone.Methods,
	}
}

func (d Draft) IsNew() bool {
	return d.ID == ""
}

func (d Draft) Contact() models.Contact {
	return models.Contact{
		ID:      d.ID,
		Name:    d.Name,
		IsFav:   d.IsFav,
		Methods: d.Methods,
	}.Clone()
}

// Validate only insists on a non-empty name.
func (d Draft) Validate() error {
	if err := validate.Struct(d); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fieldErr := range validationErrs {
				if fieldErr.Field() == "Name" {
					return ErrNameRequired
				}
			}
		}
		return err
	}
	return nil
}

func (d *Draft) SetName(name string) {
	d.Name = name
}

func (d *Draft) ToggleFav() {
	d.IsFav = !d.IsFav
}

func (d *Draft) AddMethod() {
	d.Methods = append(d.Methods, models.ContactMethod{Type: models.MethodPhone})
}

func (d *Draft) SetMethodType(i int, t models.MethodType) {
	if i < 0 || i >= len(d.Methods) {
		return
	}
	d.Methods[i].Type = t
}

func (d *Draft) SetMethodVal(i int, val string) {
	if i < 0 || i >= len(d.Methods) {
		return
	}
	d.Methods[i].Val = val
}

func (d *Draft) RemoveMethod(i int) {
	if i < 0 || i >= len(d.Methods) {
		return
	}
	methods := make([]models.ContactMethod, 0, len(d.Methods)-1)
	methods = append(methods, d.Methods[:i]...)
	d.Methods = append(methods, d.Methods[i+1:]...)
}
