package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAllCompleteForm(t *testing.T) {
	assert.Empty(t, ValidateAll(completeValues()))
}

func TestIntegerBoundaries(t *testing.T) {
	tests := []struct {
		field  string
		value  any
		reason Reason
	}{
		{"age", 1, ""},
		{"age", 150, ""},
		{"age", 0, ReasonRequired},
		{"age", 151, ReasonInvalid},
		{"weight", 1.0, ""},
		{"weight", 500.0, ""},
		{"weight", 65.5, ""},
		{"weight", 0.0, ReasonRequired},
		{"weight", 0.5, ReasonRequired},
		{"weight", 500.5, ReasonInvalid},
		{"weight", 501.0, ReasonInvalid},
		{"height", 1.0, ""},
		{"height", 300.0, ""},
		{"height", 0.0, ReasonRequired},
		{"height", 301.0, ReasonInvalid},
		{"height", -5.0, ReasonRequired},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			v := completeValues()
			v[tt.field] = tt.value

			errs, err := ValidateStep(v, StepPersonalData)
			require.NoError(t, err)
			assert.Equal(t, tt.reason, errs.ByField()[tt.field], "%s=%v", tt.field, tt.value)
		})
	}
}

func TestDependentBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		gov      string
		dep      string
		value    int
		step     int
		wantFail bool
	}{
		{"weeks lower bound", "pregnancy", "pregnancy_weeks", 1, StepAdditionalInfo, false},
		{"weeks upper bound", "pregnancy", "pregnancy_weeks", 42, StepAdditionalInfo, false},
		{"weeks above", "pregnancy", "pregnancy_weeks", 43, StepAdditionalInfo, true},
		{"weeks zero", "pregnancy", "pregnancy_weeks", 0, StepAdditionalInfo, true},
		{"cigarettes upper bound", "smoker", "cigarettes_per_day", 100, StepMedicalHistory, false},
		{"cigarettes above", "smoker", "cigarettes_per_day", 101, StepMedicalHistory, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := completeValues()
			v[tt.gov] = Yes
			v[tt.dep] = tt.value

			errs, err := ValidateStep(v, tt.step)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFail, errs.Has(tt.dep))
		})
	}
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		field string
		value any
	}{
		{"date_of_birth", "01/05/1994"},
		{"date_of_birth", "1994-13-01"},
		{"blood_type", "Z+"},
		{"stroke", Token("maybe")},
		{"stroke", true},
		{"age", "30"},
		{"weight", 65},
		{"first_name", 7},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			v := completeValues()
			v[tt.field] = tt.value
			assert.Equal(t, ReasonInvalid, ValidateAll(v).ByField()[tt.field])
		})
	}
}

func TestRequiredFieldsMissing(t *testing.T) {
	v := completeValues()
	delete(v, "first_name")
	delete(v, "hypertension")
	v["last_name"] = "   "

	byField := ValidateAll(v).ByField()
	assert.Equal(t, ReasonRequired, byField["first_name"])
	assert.Equal(t, ReasonRequired, byField["last_name"])
	assert.Equal(t, ReasonRequired, byField["hypertension"])
	assert.Len(t, byField, 3)
}

func TestOptionalFieldsMayBeAbsent(t *testing.T) {
	v := completeValues()
	delete(v, "profession")
	delete(v, "other_conditions")
	delete(v, "medication_last_month")
	assert.Empty(t, ValidateAll(v))
}

func TestStepIsolation(t *testing.T) {
	v := completeValues()
	delete(v, "previous_surgeries")
	v["weight"] = 9000.0

	errs, err := ValidateStep(v, StepCommunication)
	require.NoError(t, err)
	assert.Empty(t, errs)

	errs, err = ValidateStep(v, StepPersonalData)
	require.NoError(t, err)
	assert.True(t, errs.Has("weight"))
	assert.False(t, errs.Has("previous_surgeries"))
}

func TestConditionalActivation(t *testing.T) {
	tests := []struct {
		gov     string
		trigger Token
		dep     string
		step    int
		value   any
	}{
		{"speaks_primary", No, "other_language", StepCommunication, "maghiara"},
		{"cardiac_pacemaker", Yes, "pacemaker_type", StepMedicalHistory, "bicameral"},
		{"smoker", Yes, "cigarettes_per_day", StepMedicalHistory, 10},
		{"pregnancy", Yes, "pregnancy_weeks", StepAdditionalInfo, 20},
	}

	for _, tt := range tests {
		t.Run(tt.dep, func(t *testing.T) {
			v := completeValues()

			errs, _ := ValidateStep(v, tt.step)
			assert.False(t, errs.Has(tt.dep), "inactive dependent is not required")

			v[tt.gov] = tt.trigger
			errs, _ = ValidateStep(v, tt.step)
			assert.Equal(t, ReasonRequired, errs.ByField()[tt.dep])

			v[tt.dep] = tt.value
			errs, _ = ValidateStep(v, tt.step)
			assert.False(t, errs.Has(tt.dep))
		})
	}
}

func TestInactiveDependentIgnoredEvenWhenInvalid(t *testing.T) {
	v := completeValues()
	v["pregnancy_weeks"] = 99
	assert.False(t, ValidateAll(v).Has("pregnancy_weeks"))
}

func TestResolve(t *testing.T) {
	v := completeValues()
	active := Resolve(v)
	assert.False(t, active.IsActive("other_language"))
	assert.False(t, active.IsRequired("pacemaker_type"))
	assert.True(t, active.IsActive("age"))
	assert.True(t, active.IsRequired("age"))
	assert.False(t, active.IsRequired("profession"))

	v["speaks_primary"] = No
	v["smoker"] = Yes
	active = Resolve(v)
	assert.True(t, active.IsRequired("other_language"))
	assert.True(t, active.IsRequired("cigarettes_per_day"))
	assert.False(t, active.IsActive("pregnancy_weeks"))
}
