package config

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig validates the entire configuration and returns all validation errors
func (c *Config) ValidateConfig() error {
	var validationErrors ValidationErrors

	if c.Resolver == nil {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "resolver",
			Message:   "configuration must contain 'resolver' section",
		})
	} else if err := validate.Struct(c.Resolver); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "resolver")...)
	}

	if c.Export == nil {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "export",
			Message:   "configuration must contain 'export' section",
		})
	} else {
		if err := validate.Struct(c.Export); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, "export")...)
		}
		if c.Export.Output != "" && c.Export.Output == c.Export.DiagnosticsOutput {
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: "export.diagnostics_output",
				Message:   "must differ from export.output",
			})
		}
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

// convertValidatorErrors converts go-playground/validator errors to our ValidationError format
func convertValidatorErrors(err error, fieldPrefix string) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			fieldPath := fieldPrefix
			if e.Field() != "" {
				// e.Field() returns the TOML tag name because we registered TagNameFunc
				fieldPath = fieldPrefix + "." + e.Field()
			}

			validationErrors = append(validationErrors, ValidationError{
				FieldPath: fieldPath,
				Message:   getValidationMessage(e),
			})
		}
	}

	return validationErrors
}
