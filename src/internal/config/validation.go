package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/maksimkurb/bigip-sd/src/internal/resolver/upstreams"
)

var labelNameRegexp = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "gte":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "upstream_url":
		return "must be a valid upstream URL (udp://ip[:port], ip[:port], doh://host/path or https://host/path)"
	case "label_name":
		return "must match [a-zA-Z_][a-zA-Z0-9_]* and must not start with __"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	FieldPath string // Dot-notation field path (e.g., "resolver.upstreams[0]")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("upstream_url", validateUpstreamURLTag); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("label_name", validateLabelNameTag); err != nil {
		panic(err)
	}

	// Register function to get field name from "toml" tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validator: upstream URL format
func validateUpstreamURLTag(fl validator.FieldLevel) bool {
	return validateUpstreamURL(fl.Field().String()) == nil
}

// Custom validator: Prometheus label name
func validateLabelNameTag(fl validator.FieldLevel) bool {
	return IsValidLabelName(fl.Field().String())
}

// IsValidLabelName reports whether name is usable as a Prometheus target label.
// Names starting with "__" are reserved for internal use.
func IsValidLabelName(name string) bool {
	return labelNameRegexp.MatchString(name) && !strings.HasPrefix(name, "__")
}

// validateUpstreamURL checks that upstream is accepted by the upstream parser.
func validateUpstreamURL(upstream string) error {
	if upstream == "" {
		return fmt.Errorf("upstream URL cannot be empty")
	}

	u, err := upstreams.ParseUpstream(upstream, 0)
	if err != nil {
		return err
	}
	return u.Close()
}
