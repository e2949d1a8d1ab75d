// Package validator wraps go-playground/validator so structs can be checked
// declaratively via `validate` tags, with failures reported as a single
// joined error rooted at ErrValidationFailed.
package validator

import (
	"errors"
	"fmt"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed roots every error chain returned for failed
// validations, so callers can detect them with errors.Is regardless of how
// many fields were invalid.
var ErrValidationFailed = errors.New("struct validation failed")

// validate is the package-level validator instance, built on import.
var validate *gvalidator.Validate

// fieldErrFormat renders one field failure, e.g.
// "'Address': value '' does not satisfy the 'required' rule".
const fieldErrFormat = "'%s': value '%v' does not satisfy the '%s' rule"

func init() {
	validate = gvalidator.New(gvalidator.WithRequiredStructEnabled())
}

// formatError converts raw validator output into the joined error shape. Any
// error that is not a set of field validation errors passes through as-is.
func formatError(err error) error {
	var fieldErrors gvalidator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, fieldErr := range fieldErrors {
		errs = append(errs, fmt.Errorf(fieldErrFormat,
			fieldErr.Field(),
			fieldErr.Value(),
			fieldErr.Tag(),
		))
	}

	return errors.Join(errs...)
}

// Validate checks v against its `validate` tags. It returns nil when every
// field passes, otherwise an error chain containing ErrValidationFailed plus
// one formatted entry per failing field.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}
