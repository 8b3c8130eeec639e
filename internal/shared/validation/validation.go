package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
)

var (
	vnPhonePattern = regexp.MustCompile(`^(84|0[35789])[0-9]{8}$`)
	visaPattern    = regexp.MustCompile(`^4[0-9]{12}(?:[0-9]{3})?$`)
	expiryPattern  = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
)

// Now is the clock used by the cardexpiry rule.
var Now = time.Now

// New returns a validator with the ticketing rules registered:
//
//	vnphone    Vietnamese mobile number
//	visa       VISA card number
//	cardexpiry MM/yy, current month or later
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("vnphone", func(fl validator.FieldLevel) bool {
		return IsVNPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("visa", func(fl validator.FieldLevel) bool {
		return visaPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("cardexpiry", func(fl validator.FieldLevel) bool {
		return IsFutureExpiry(fl.Field().String(), Now())
	})
	return v
}

func IsVNPhone(s string) bool {
	return vnPhonePattern.MatchString(s)
}

// IsFutureExpiry reports whether a MM/yy expiry has not passed at now.
func IsFutureExpiry(s string, now time.Time) bool {
	m := expiryPattern.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	var month, year int
	fmt.Sscanf(m[1], "%d", &month)
	fmt.Sscanf(m[2], "%d", &year)
	year += 2000

	return year > now.Year() || (year == now.Year() && month >= int(now.Month()))
}

// Struct validates s and converts failures into an apperror.ValidationError
// whose Details map field name -> message.
func Struct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Invalid("", err.Error())
	}
	return FieldErrors{Fields: Details(verrs)}
}

// FieldErrors carries one message per invalid field.
type FieldErrors struct {
	Fields map[string]string
}

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets apperror.IsValidation recognise field errors.
func (e FieldErrors) Unwrap() error {
	return apperror.ValidationError{Msg: "validation failed"}
}

func Details(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "email":
		return "must be a valid email"
	case "vnphone":
		return "must be a valid Vietnamese phone number"
	case "visa":
		return "must be a valid VISA card number"
	case "cardexpiry":
		return "must be a future date in MM/yy format"
	case "len":
		return fmt.Sprintf("must be %s characters long", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "numeric":
		return "must be numeric"
	case "gt", "gte":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "eqfield":
		return fmt.Sprintf("must match %s", fe.Param())
	case "nefield":
		return fmt.Sprintf("must differ from %s", fe.Param())
	default:
		return "is invalid"
	}
}
