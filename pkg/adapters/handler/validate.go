package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return domain.ValidUsername(domain.NormalizeUsername(fl.Field().String()))
	})
	_ = v.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
		_, ok := domain.LookupTheme(fl.Field().String())
		return ok
	})
	return v
}

// decodeAndValidate reads a JSON body into dst and runs its struct tags.
// The returned error message is safe to send to the client.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return errors.New(getValidationErrorMessage(verrs[0]))
		}
		return err
	}
	return nil
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "url":
		return domain.ErrInvalidURL.Error()
	case "username":
		return domain.ErrInvalidUsername.Error()
	case "theme":
		return domain.ErrInvalidTheme.Error()
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}
