package registration

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func init() {
	_ = validate.RegisterValidation("username", validateUsernameChars)

	// Report on json tag instead of struct field name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateUsernameChars(fl validator.FieldLevel) bool {
	return usernameRe.MatchString(fl.Field().String())
}

// ContactInput is step one: where to send the one-time codes.
type ContactInput struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,min=10"`
}

// VerificationInput is step two: both codes must be entered.
type VerificationInput struct {
	EmailOTP string `json:"email_otp" validate:"required,len=6,numeric"`
	PhoneOTP string `json:"phone_otp" validate:"required,len=6,numeric"`
}

// UsernameInput is step three.
type UsernameInput struct {
	Username string `json:"username" validate:"required,min=3,username"`
}

// SecurityInput is step four. Confirmation must match the password exactly.
type SecurityInput struct {
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// ValidationError carries per-field messages for inline display. It is a
// local shape failure: no network call was made.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// validateInput runs struct validation and converts validator errors into
// user facing field messages.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(errs))
	for _, fieldError := range errs {
		var message string
		switch fieldError.Tag() {
		case "required":
			message = "This field is required"
		case "email":
			message = "Invalid email address"
		case "min":
			message = fmt.Sprintf("Value is too short (minimum %s)", fieldError.Param())
		case "len":
			message = fmt.Sprintf("Must be exactly %s characters", fieldError.Param())
		case "numeric":
			message = "Must contain only digits"
		case "username":
			message = "Only letters, numbers, and underscores are allowed"
		case "eqfield":
			message = "Passwords do not match"
		default:
			message = "Invalid value"
		}
		fields[fieldError.Field()] = message
	}

	return &ValidationError{Fields: fields}
}
