package validators

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-rpa-cadastro/models"
)

// Employee fields that carry a rule.
const (
	FieldName  = "Name"
	FieldEmail = "Email"
	FieldRole  = "Role"
)

var employeeFields = map[string]struct{}{
	FieldName:  {},
	FieldEmail: {},
	FieldRole:  {},
}

// EmployeeValidator enforces the `validate` tags of [models.Employee].
type EmployeeValidator struct {
	validate *validator.Validate
}

func NewEmployeeValidator() Validator {
	return &EmployeeValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v *EmployeeValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Employee:
		return v.validateEmployee(value, fields...)
	case *models.Employee:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateEmployee(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *EmployeeValidator) validateEmployee(e models.Employee, fields ...string) error {
	var err error
	if len(fields) == 0 {
		err = v.validate.Struct(e)
	} else {
		for _, f := range fields {
			if _, ok := employeeFields[f]; !ok {
				return fmt.Errorf("%w: %s", ErrUnknownField, f)
			}
		}
		err = v.validate.StructPartial(e, fields...)
	}
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, fe.Field())
	}
	return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
}
