package evaluation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownField       = errors.New("unknown field")
	ErrInvalidValue       = errors.New("invalid value")
	ErrUnknownStep        = errors.New("unknown step")
	ErrUnknownSubsection  = errors.New("unknown subsection")
	ErrNoNextStep         = errors.New("already on the last step")
	ErrNotFinalStep       = errors.New("submission is only possible from the last step")
	ErrReadOnly           = errors.New("evaluation already submitted")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrSubmissionFailed   = errors.New("the evaluation could not be saved, please try again")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrSchemaDrift        = errors.New("evaluation schema and record are out of sync")
)

// Reason is the generic cause of a field error. Messages are localized by the
// presentation layer.
type Reason string

const (
	ReasonRequired Reason = "required"
	ReasonInvalid  Reason = "invalid"
)

// FieldError reports one field failing its check.
type FieldError struct {
	Field  string `json:"field"`
	Reason Reason `json:"reason"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors is the set of field errors of a validation pass.
type ValidationErrors []*FieldError

func (ve ValidationErrors) Error() string {
	parts := make([]string, len(ve))
	for i, e := range ve {
		parts[i] = e.Error()
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// ByField indexes the errors by field name.
func (ve ValidationErrors) ByField() map[string]Reason {
	out := make(map[string]Reason, len(ve))
	for _, e := range ve {
		out[e.Field] = e.Reason
	}
	return out
}

// Has reports whether field failed.
func (ve ValidationErrors) Has(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}

// orNil keeps a nil ValidationErrors from becoming a non-nil error value.
func (ve ValidationErrors) orNil() error {
	if len(ve) == 0 {
		return nil
	}
	return ve
}
