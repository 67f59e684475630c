package evaluation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"vrajamarii/internal/models"
)

// Record columns that carry identity or bookkeeping rather than answers.
var metadataColumns = map[string]bool{
	"id":         true,
	"user_id":    true,
	"created_at": true,
	"updated_at": true,
}

var (
	dateType = reflect.TypeOf(datatypes.Date{})

	columns, bindErr = bindRecord(reflect.TypeOf(models.EvaluationRecord{}))
)

// bindRecord maps every schema field to the record struct field carrying the
// same json name, and fails when either side has a name the other lacks or
// when the Go type cannot hold the field's kind.
func bindRecord(t reflect.Type) (map[string][]int, error) {
	out := make(map[string][]int, len(fields))
	seen := make(map[string]bool, len(fields))
	var problems []string

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := strings.Split(sf.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" || metadataColumns[name] {
			continue
		}
		f, ok := Lookup(name)
		if !ok {
			problems = append(problems, fmt.Sprintf("column %q has no form field", name))
			continue
		}
		seen[name] = true
		if !compatible(f, sf.Type) {
			problems = append(problems, fmt.Sprintf("column %q has type %s, incompatible with %s", name, sf.Type, f.Kind))
			continue
		}
		out[name] = sf.Index
	}

	for _, f := range fields {
		if !seen[f.Name] {
			problems = append(problems, fmt.Sprintf("form field %q has no column", f.Name))
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSchemaDrift, strings.Join(problems, "; "))
	}
	return out, nil
}

func compatible(f Field, t reflect.Type) bool {
	base := t
	if t.Kind() == reflect.Pointer {
		base = t.Elem()
	}
	switch f.Kind {
	case KindYesNo:
		return t.Kind() == reflect.Bool
	case KindInteger:
		return base.Kind() == reflect.Int
	case KindDecimal:
		return base.Kind() == reflect.Float64
	case KindDate:
		return base == dateType
	default:
		return base.Kind() == reflect.String
	}
}

// CheckSchema reports drift between the form schema and the record.
func CheckSchema() error {
	return bindErr
}

// ToRecord converts validated in-memory values into the persisted record.
// Yes/no tokens become booleans; dependents whose rule is inactive and blank
// optional fields become NULL, whatever the in-memory value holds.
func ToRecord(userID uuid.UUID, v Values) (*models.EvaluationRecord, error) {
	if bindErr != nil {
		return nil, bindErr
	}
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	for name := range v {
		if _, ok := Lookup(name); !ok {
			return nil, fmt.Errorf("%w: value for unknown field %q", ErrSchemaDrift, name)
		}
	}
	if errs := ValidateAll(v); len(errs) > 0 {
		return nil, errs
	}

	rec := &models.EvaluationRecord{UserID: userID}
	rv := reflect.ValueOf(rec).Elem()
	active := Resolve(v)

	for _, f := range fields {
		dst := rv.FieldByIndex(columns[f.Name])
		raw, present := v[f.Name]
		if !active.IsActive(f.Name) || !present {
			dst.Set(reflect.Zero(dst.Type()))
			continue
		}

		switch f.Kind {
		case KindYesNo:
			dst.SetBool(raw.(Token).Bool())
		case KindInteger:
			setValue(dst, reflect.ValueOf(raw.(int)))
		case KindDecimal:
			setValue(dst, reflect.ValueOf(raw.(float64)))
		case KindDate:
			d, err := time.Parse(DateLayout, raw.(string))
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			setValue(dst, reflect.ValueOf(datatypes.Date(d)))
		default:
			setValue(dst, reflect.ValueOf(raw.(string)))
		}
	}
	return rec, nil
}

// FromRecord converts a stored record back into form values. Booleans become
// tokens, NULL columns stay unset, everything else passes through.
func FromRecord(rec *models.EvaluationRecord) (Values, error) {
	if bindErr != nil {
		return nil, bindErr
	}

	v := make(Values, len(fields))
	rv := reflect.ValueOf(rec).Elem()

	for _, f := range fields {
		src := rv.FieldByIndex(columns[f.Name])
		if src.Kind() == reflect.Pointer {
			if src.IsNil() {
				continue
			}
			src = src.Elem()
		}

		switch f.Kind {
		case KindYesNo:
			v[f.Name] = TokenOf(src.Bool())
		case KindInteger:
			v[f.Name] = int(src.Int())
		case KindDecimal:
			v[f.Name] = src.Float()
		case KindDate:
			d := src.Interface().(datatypes.Date)
			v[f.Name] = time.Time(d).Format(DateLayout)
		default:
			if s := src.String(); s != "" {
				v[f.Name] = s
			}
		}
	}
	return v, nil
}

func setValue(dst, val reflect.Value) {
	if dst.Kind() == reflect.Pointer {
		p := reflect.New(dst.Type().Elem())
		p.Elem().Set(val)
		dst.Set(p)
		return
	}
	dst.Set(val)
}
