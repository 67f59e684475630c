// Package evaluation holds the pre-visit medical evaluation form: its field
// schema, step partitioning, conditional requirements, the step-gated form
// state machine and the mapping to the persisted record.
package evaluation

import (
	"github.com/samber/lo"
)

// Kind is the primitive type of a form field.
type Kind int

const (
	KindText Kind = iota
	KindLongText
	KindInteger
	KindDecimal
	KindDate
	KindEnum
	KindYesNo
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindLongText:
		return "long_text"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindDate:
		return "date"
	case KindEnum:
		return "enum"
	case KindYesNo:
		return "yes_no"
	default:
		return "unknown"
	}
}

// DateLayout is the wire format of date fields.
const DateLayout = "2006-01-02"

// BloodTypes lists the accepted blood_type values.
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-", "unknown"}

// Field describes one evaluation form field. Min and Max bound integer and
// decimal fields inclusively. Dependent fields are never Required here; their
// requirement comes from the rule that governs them.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Min      int
	Max      int
	Options  []string
	Default  any
}

func yesNo(name string) Field {
	return Field{Name: name, Kind: KindYesNo, Required: true}
}

func text(name string, required bool) Field {
	return Field{Name: name, Kind: KindText, Required: required}
}

func longText(name string) Field {
	return Field{Name: name, Kind: KindLongText}
}

func integer(name string, required bool, min, max int) Field {
	return Field{Name: name, Kind: KindInteger, Required: required, Min: min, Max: max}
}

func decimal(name string, min, max int) Field {
	return Field{Name: name, Kind: KindDecimal, Required: true, Min: min, Max: max}
}

// Bounded reports whether Min and Max apply to f.
func (f Field) Bounded() bool {
	return f.Kind == KindInteger || f.Kind == KindDecimal
}

var fields = []Field{
	// personal data
	text("first_name", true),
	text("last_name", true),
	integer("age", true, 1, 150),
	{Name: "date_of_birth", Kind: KindDate, Required: true},
	text("profession", false),
	{Name: "blood_type", Kind: KindEnum, Required: true, Options: BloodTypes, Default: "unknown"},
	decimal("weight", 1, 500),
	decimal("height", 1, 300),

	// communication
	yesNo("speaks_primary"),
	text("other_language", false),
	yesNo("visual_impairment"),
	yesNo("hearing_impairment"),
	yesNo("speech_impairment"),

	// medical history: neurological
	yesNo("stroke"),
	yesNo("seizures"),
	yesNo("hemiparesis"),

	// medical history: cardiovascular
	yesNo("hypertension"),
	yesNo("cardiopathy"),
	yesNo("swollen_feet"),
	yesNo("fatigue_stairs"),
	yesNo("varicose_veins"),
	yesNo("myocardial_infarction"),
	yesNo("chest_pain"),
	yesNo("irregular_heartbeat"),
	yesNo("cardiac_pacemaker"),
	text("pacemaker_type", false),
	yesNo("valvulopathy"),

	// medical history: pulmonary
	yesNo("bronchitis"),
	yesNo("respiratory_virus"),
	yesNo("shortness_of_breath"),
	yesNo("tuberculosis"),
	yesNo("smoker"),
	integer("cigarettes_per_day", false, 1, 100),

	// medical history: hepatic / gastric
	yesNo("hepatitis"),
	yesNo("gastric_ulcer"),
	yesNo("diabetes"),

	// medical history: hematological
	yesNo("hemophilia"),
	yesNo("recent_bleeding"),
	yesNo("anemia"),
	yesNo("hiv_infection"),

	// medical history: other
	yesNo("spinal_problems"),
	yesNo("kidney_disease"),
	yesNo("thyroid_disease"),
	yesNo("myasthenia_gravis"),
	yesNo("duchenne_disease"),
	yesNo("rheumatic_diseases"),
	yesNo("accidents_trauma"),
	yesNo("psychiatric_conditions"),
	longText("other_conditions"),

	// additional information
	yesNo("cultural_restrictions"),
	yesNo("recent_infectious_contact"),
	yesNo("pregnancy"),
	integer("pregnancy_weeks", false, 1, 42),
	longText("medication_last_month"),
	yesNo("previous_surgeries"),
}

var fieldIndex = lo.KeyBy(fields, func(f Field) string { return f.Name })

// Fields returns every field in declaration order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldNames returns every field name in declaration order.
func FieldNames() []string {
	return lo.Map(fields, func(f Field, _ int) string { return f.Name })
}

// Lookup returns the field declared under name.
func Lookup(name string) (Field, bool) {
	f, ok := fieldIndex[name]
	return f, ok
}

// YesNoFields returns the names of all yes/no fields.
func YesNoFields() []string {
	yn := lo.Filter(fields, func(f Field, _ int) bool { return f.Kind == KindYesNo })
	return lo.Map(yn, func(f Field, _ int) string { return f.Name })
}

// Rule makes Dependent required while Governing holds Trigger. While the rule
// is inactive the dependent is ignored by validation and not persisted.
type Rule struct {
	Governing string
	Trigger   Token
	Dependent string
}

var rules = []Rule{
	{Governing: "speaks_primary", Trigger: No, Dependent: "other_language"},
	{Governing: "cardiac_pacemaker", Trigger: Yes, Dependent: "pacemaker_type"},
	{Governing: "smoker", Trigger: Yes, Dependent: "cigarettes_per_day"},
	{Governing: "pregnancy", Trigger: Yes, Dependent: "pregnancy_weeks"},
}

// Rules returns the cross-field rules.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

func ruleFor(dependent string) (Rule, bool) {
	return lo.Find(rules, func(r Rule) bool { return r.Dependent == dependent })
}

func rulesGovernedBy(name string) []Rule {
	return lo.Filter(rules, func(r Rule, _ int) bool { return r.Governing == name })
}

// IsDependent reports whether name is governed by a rule.
func IsDependent(name string) bool {
	_, ok := ruleFor(name)
	return ok
}
