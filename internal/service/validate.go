package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Shivanand-hulikatti/beoflow/internal/model"
)

// ErrInvalid wraps every validation failure so handlers can map it to 400.
var ErrInvalid = errors.New("invalid input")

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("beo_status", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		if f.Kind() == reflect.Ptr {
			if f.IsNil() {
				return true
			}
			f = f.Elem()
		}
		return model.EventStatus(f.String()).Valid()
	})
	return v
}

// invalid converts a validator error into an ErrInvalid-wrapped message
// naming the first offending field.
func invalid(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required", "min":
			return fmt.Errorf("%w: %s is required", ErrInvalid, fe.Field())
		case "gte":
			return fmt.Errorf("%w: %s must not be negative", ErrInvalid, fe.Field())
		case "email":
			return fmt.Errorf("%w: %s is not a valid email address", ErrInvalid, fe.Field())
		case "beo_status":
			return fmt.Errorf("%w: %v is not a valid status", ErrInvalid, fe.Value())
		default:
			return fmt.Errorf("%w: %s failed %s", ErrInvalid, fe.Field(), fe.Tag())
		}
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}
