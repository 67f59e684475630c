package evaluation

import (
	"fmt"
	"slices"
)

const (
	StepPersonalData = iota
	StepCommunication
	StepMedicalHistory
	StepAdditionalInfo

	StepCount
)

var stepNames = [StepCount]string{
	"personal_data",
	"communication",
	"medical_history",
	"additional_info",
}

var steps = [StepCount][]string{
	StepPersonalData: {
		"first_name", "last_name", "age", "date_of_birth", "profession", "blood_type", "weight", "height",
	},
	StepCommunication: {
		"speaks_primary", "other_language", "visual_impairment", "hearing_impairment", "speech_impairment",
	},
	StepMedicalHistory: {
		"stroke", "seizures", "hemiparesis",
		"hypertension", "cardiopathy", "swollen_feet", "fatigue_stairs", "varicose_veins",
		"myocardial_infarction", "chest_pain", "irregular_heartbeat", "cardiac_pacemaker",
		"pacemaker_type", "valvulopathy",
		"bronchitis", "respiratory_virus", "shortness_of_breath", "tuberculosis",
		"smoker", "cigarettes_per_day",
		"hepatitis", "gastric_ulcer", "diabetes",
		"hemophilia", "recent_bleeding", "anemia", "hiv_infection",
		"spinal_problems", "kidney_disease", "thyroid_disease", "myasthenia_gravis",
		"duchenne_disease", "rheumatic_diseases", "accidents_trauma", "psychiatric_conditions",
		"other_conditions",
	},
	StepAdditionalInfo: {
		"cultural_restrictions", "recent_infectious_contact", "pregnancy", "pregnancy_weeks",
		"medication_last_month", "previous_surgeries",
	},
}

var stepOf = func() map[string]int {
	out := make(map[string]int, len(fields))
	for i, names := range steps {
		for _, name := range names {
			out[name] = i
		}
	}
	return out
}()

// FieldsForStep returns the fields validated before leaving step i.
func FieldsForStep(i int) ([]string, error) {
	if i < 0 || i >= StepCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStep, i)
	}
	return slices.Clone(steps[i]), nil
}

// StepOf returns the step a field belongs to, or -1.
func StepOf(name string) int {
	if i, ok := stepOf[name]; ok {
		return i
	}
	return -1
}

// StepName returns the stable identifier of step i.
func StepName(i int) string {
	if i < 0 || i >= StepCount {
		return ""
	}
	return stepNames[i]
}

// Medical history subsections, each offering a "none of these" shortcut.
const (
	SubsectionNeurological   = "neurological"
	SubsectionCardiovascular = "cardiovascular"
	SubsectionPulmonary      = "pulmonary"
	SubsectionHepaticGastric = "hepatic_gastric"
	SubsectionHematological  = "hematological"
	SubsectionOther          = "other"
)

var subsectionOrder = []string{
	SubsectionNeurological,
	SubsectionCardiovascular,
	SubsectionPulmonary,
	SubsectionHepaticGastric,
	SubsectionHematological,
	SubsectionOther,
}

var subsections = map[string][]string{
	SubsectionNeurological: {"stroke", "seizures", "hemiparesis"},
	SubsectionCardiovascular: {
		"hypertension", "cardiopathy", "swollen_feet", "fatigue_stairs", "varicose_veins",
		"myocardial_infarction", "chest_pain", "irregular_heartbeat", "cardiac_pacemaker", "valvulopathy",
	},
	SubsectionPulmonary:      {"bronchitis", "respiratory_virus", "shortness_of_breath", "tuberculosis", "smoker"},
	SubsectionHepaticGastric: {"hepatitis", "gastric_ulcer", "diabetes"},
	SubsectionHematological:  {"hemophilia", "recent_bleeding", "anemia", "hiv_infection"},
	SubsectionOther: {
		"spinal_problems", "kidney_disease", "thyroid_disease", "myasthenia_gravis",
		"duchenne_disease", "rheumatic_diseases", "accidents_trauma", "psychiatric_conditions",
	},
}

var subsectionOf = func() map[string]string {
	out := make(map[string]string)
	for name, members := range subsections {
		for _, f := range members {
			out[f] = name
		}
	}
	return out
}()

// Subsections returns the medical history subsection names in display order.
func Subsections() []string {
	return slices.Clone(subsectionOrder)
}

// SubsectionFields returns the yes/no fields of a medical history subsection.
func SubsectionFields(name string) ([]string, error) {
	members, ok := subsections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSubsection, name)
	}
	return slices.Clone(members), nil
}
