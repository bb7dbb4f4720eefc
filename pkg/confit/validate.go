package confit

import (
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/thoreinstein/confit/internal/errors"
	"github.com/thoreinstein/confit/pkg/format"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	_ = validate.RegisterValidation("confit_format", validateFormat)
}

// validateFormat accepts format names understood by format.Parse, so
// config structs can tag string fields with `validate:"confit_format"`.
func validateFormat(fl validator.FieldLevel) bool {
	_, err := format.Parse(fl.Field().String())
	return err == nil
}

// validateValue runs struct validation on v. Values that are not structs
// (or pointers to structs) have no tags to check and always pass.
func validateValue(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	if err := validate.Struct(rv.Interface()); err != nil {
		return errors.Mark(err, ErrInvalid)
	}
	return nil
}
