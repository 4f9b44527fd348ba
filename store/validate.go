package store

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"restaurant-admin/models"

	"github.com/go-playground/validator/v10"
)

type entityValidator struct {
	v *validator.Validate
}

func newEntityValidator() *entityValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their JSON names so messages match the form keys.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &entityValidator{v: v}
}

// Struct validates e and converts validator failures into a ValidationError.
func (ev *entityValidator) Struct(e models.Entity) error {
	err := ev.v.Struct(e)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &models.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, &models.FieldError{
			Field:   fe.Field(),
			Err:     models.ErrValidation,
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "invalid email address"
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}
