package evaluation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Token is the in-memory answer of a yes/no field. There is no zero answer:
// an unset field is simply absent from Values.
type Token string

const (
	Yes Token = "yes"
	No  Token = "no"
)

// ParseToken accepts "yes" or "no", ignoring case and surrounding space.
func ParseToken(s string) (Token, bool) {
	switch Token(strings.ToLower(strings.TrimSpace(s))) {
	case Yes:
		return Yes, true
	case No:
		return No, true
	}
	return "", false
}

// TokenOf maps a persisted boolean to its token.
func TokenOf(b bool) Token {
	if b {
		return Yes
	}
	return No
}

// Bool maps a token to its persisted boolean.
func (t Token) Bool() bool {
	return t == Yes
}

// Values holds in-memory form values keyed by field name. Absent keys are
// unset. Stored values are canonical: string for text, date and enum fields,
// int for integer fields, float64 for decimal fields and Token for yes/no
// fields.
type Values map[string]any

// Clone returns a shallow copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Token returns the token stored under name.
func (v Values) Token(name string) (Token, bool) {
	t, ok := v[name].(Token)
	return t, ok
}

// String returns the string stored under name.
func (v Values) String(name string) (string, bool) {
	s, ok := v[name].(string)
	return s, ok
}

// Int returns the integer stored under name.
func (v Values) Int(name string) (int, bool) {
	n, ok := v[name].(int)
	return n, ok
}

// Float returns the decimal stored under name.
func (v Values) Float(name string) (float64, bool) {
	x, ok := v[name].(float64)
	return x, ok
}

// UnmarshalJSON decodes a field map and coerces every entry through the
// schema, so a decoded Values is always canonical.
func (v *Values) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	out := make(Values, len(raw))
	for name, r := range raw {
		f, ok := Lookup(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		val, set, err := coerce(f, r)
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		if set {
			out[name] = val
		}
	}
	*v = out
	return nil
}

// coerce converts a raw presentation value into the canonical type of f.
// set is false when raw means "no value" (nil or blank).
func coerce(f Field, raw any) (value any, set bool, err error) {
	if raw == nil {
		return nil, false, nil
	}

	switch f.Kind {
	case KindYesNo:
		var s string
		switch r := raw.(type) {
		case Token:
			s = string(r)
		case string:
			s = r
		default:
			return nil, false, ErrInvalidValue
		}
		if strings.TrimSpace(s) == "" {
			return nil, false, nil
		}
		t, ok := ParseToken(s)
		if !ok {
			return nil, false, ErrInvalidValue
		}
		return t, true, nil

	case KindInteger:
		switch r := raw.(type) {
		case int:
			return r, true, nil
		case int32:
			return int(r), true, nil
		case int64:
			return int(r), true, nil
		case float64:
			if r != math.Trunc(r) || r < minIntFloat || r >= maxIntFloat {
				return nil, false, ErrInvalidValue
			}
			return int(r), true, nil
		case json.Number:
			return parseInt(string(r))
		case string:
			return parseInt(r)
		default:
			return nil, false, ErrInvalidValue
		}

	case KindDecimal:
		switch r := raw.(type) {
		case int:
			return float64(r), true, nil
		case int64:
			return float64(r), true, nil
		case float64:
			return finite(r)
		case json.Number:
			return parseFloat(string(r))
		case string:
			return parseFloat(r)
		default:
			return nil, false, ErrInvalidValue
		}

	default:
		s, ok := raw.(string)
		if !ok {
			return nil, false, ErrInvalidValue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, false, nil
		}
		return s, true, nil
	}
}

// Bounds of the float64 values that convert to int without overflow.
const (
	minIntFloat = float64(math.MinInt)
	maxIntFloat = -minIntFloat
)

func finite(x float64) (any, bool, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil, false, ErrInvalidValue
	}
	return x, true, nil
}

func parseFloat(s string) (any, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false, nil
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false, ErrInvalidValue
	}
	return finite(x)
}

func parseInt(s string) (any, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, false, ErrInvalidValue
	}
	return n, true, nil
}
