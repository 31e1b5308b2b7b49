// Package validation wraps go-playground/validator behind a single entry
// point that converts tag violations into the service-layer ValidationError.
// It is a pure shape check: uniqueness and reference existence are the
// guards' job and run only after this passes.
package validation

import (
	"reflect"
	"regexp"
	"strings"

	"rentalbaju/internal/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

var (
	productCodeRe = regexp.MustCompile(`^[A-Z0-9]{4}$`)
	hexRRGGBBRe   = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

func init() {
	// Violations are reported under the field's wire name, not the Go name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Register decimal.Decimal as a numeric type so that validator tags like
	// gt=0, max=999999999 work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// productcode: exactly 4 chars, uppercase alphanumeric. Lowercase input is
	// rejected here, before any uniqueness or DB work happens.
	_ = validate.RegisterValidation("productcode", func(fl validator.FieldLevel) bool {
		return productCodeRe.MatchString(fl.Field().String())
	})

	// rrggbb: full 6-digit hex color with leading '#'. Stricter than the
	// built-in hexcolor tag, which also admits the #RGB shorthand.
	_ = validate.RegisterValidation("rrggbb", func(fl validator.FieldLevel) bool {
		return hexRRGGBBRe.MatchString(fl.Field().String())
	})
}

// Struct validates v against its `validate` tags. On failure it returns a
// *apierror.ValidationError naming every violated field.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// validator.InvalidValidationError — programming error, not client input
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = violationMessage(fe)
	}
	return apierror.NewValidation(fields)
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "wajib diisi"
	case "productcode":
		return "harus 4 karakter huruf kapital/angka"
	case "rrggbb":
		return "harus berformat #RRGGBB"
	case "uuid":
		return "bukan ID yang valid"
	case "min":
		return "kurang dari batas minimum " + fe.Param()
	case "max":
		return "melebihi batas maksimum " + fe.Param()
	case "gt":
		return "harus lebih besar dari " + fe.Param()
	case "oneof":
		return "harus salah satu dari: " + fe.Param()
	case "email":
		return "bukan alamat email yang valid"
	default:
		return "tidak valid (" + fe.Tag() + ")"
	}
}
