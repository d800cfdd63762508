package therapist

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		pw := fl.Field().String()
		return pw != "" && !strings.ContainsAny(pw, " \t\n")
	})
	return v
}

// normalize trims every field and lower-cases the email. The password is
// left untouched.
func normalize(req SignupRequest) SignupRequest {
	return SignupRequest{
		Name:     strings.TrimSpace(req.Name),
		Mobile:   strings.TrimSpace(req.Mobile),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
	}
}

func validateSignup(req SignupRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fe.Field()+" is required")
		case "email":
			messages = append(messages, "Please enter a valid email")
		case "password":
			messages = append(messages, "password must not contain whitespace")
		default:
			messages = append(messages, fe.Field()+" is invalid")
		}
	}
	return &ValidationError{Messages: messages}
}
