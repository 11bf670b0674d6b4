package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// bindingDetails lists the failing field and rule for validation errors so
// clients can tell which input was rejected. Malformed bodies get no details.
func bindingDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}
