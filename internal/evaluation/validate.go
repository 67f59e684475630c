package evaluation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// Validate checks the named fields of v. Dependent fields are checked only
// while their rule is active, and then as required. It returns nil when every
// field passes.
func Validate(v Values, names []string) ValidationErrors {
	active := Resolve(v)

	var errs ValidationErrors
	for _, name := range names {
		f, ok := Lookup(name)
		if !ok {
			errs = append(errs, &FieldError{Field: name, Reason: ReasonInvalid})
			continue
		}
		if !active.IsActive(name) {
			continue
		}
		if reason, failed := check(f, v, active.IsRequired(name)); failed {
			errs = append(errs, &FieldError{Field: name, Reason: reason})
		}
	}
	return errs
}

// ValidateStep checks the fields of step i.
func ValidateStep(v Values, i int) (ValidationErrors, error) {
	names, err := FieldsForStep(i)
	if err != nil {
		return nil, err
	}
	return Validate(v, names), nil
}

// ValidateAll checks every field and every rule.
func ValidateAll(v Values) ValidationErrors {
	return Validate(v, FieldNames())
}

// tag renders the validation rules of f in validator syntax. Presence is
// handled by check, so only required text carries "required".
func (f Field) tag() string {
	switch f.Kind {
	case KindYesNo:
		return "oneof=yes no"
	case KindInteger, KindDecimal:
		return fmt.Sprintf("min=%d,max=%d", f.Min, f.Max)
	case KindDate:
		return "datetime=" + DateLayout
	case KindEnum:
		return "oneof=" + strings.Join(f.Options, " ")
	default:
		return "required"
	}
}

var (
	validate  = validator.New()
	fieldTags = lo.MapValues(fieldIndex, func(f Field, _ string) string { return f.tag() })
)

func check(f Field, v Values, required bool) (Reason, bool) {
	raw, present := v[f.Name]
	if !present {
		if required {
			return ReasonRequired, true
		}
		return "", false
	}

	var typed any
	switch f.Kind {
	case KindYesNo:
		t, ok := raw.(Token)
		if !ok {
			return ReasonInvalid, true
		}
		typed = string(t)
	case KindInteger:
		n, ok := raw.(int)
		if !ok {
			return ReasonInvalid, true
		}
		typed = n
	case KindDecimal:
		x, ok := raw.(float64)
		if !ok {
			return ReasonInvalid, true
		}
		typed = x
	case KindDate, KindEnum:
		s, ok := raw.(string)
		if !ok {
			return ReasonInvalid, true
		}
		typed = s
	default:
		s, ok := raw.(string)
		if !ok {
			return ReasonInvalid, true
		}
		if !required {
			return "", false
		}
		typed = strings.TrimSpace(s)
	}

	if err := validate.Var(typed, fieldTags[f.Name]); err != nil {
		return reasonOf(err), true
	}
	return "", false
}

// reasonOf maps a validator failure to a reason code. Missing values and
// values under the lower bound read as required; everything else is invalid.
func reasonOf(err error) Reason {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "required", "min":
			return ReasonRequired
		}
	}
	return ReasonInvalid
}
