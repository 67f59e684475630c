package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EvaluationRecord is the persisted pre-visit evaluation, one row per user.
// Yes/no answers are stored as booleans; dependent follow-ups are NULL while
// their governing answer does not call for them.
type EvaluationRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at" example:"2025-01-01T00:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2025-01-01T00:00:00Z"`

	// Personal data
	FirstName   string         `gorm:"not null" json:"first_name" example:"Ana"`
	LastName    string         `gorm:"not null" json:"last_name" example:"Pop"`
	Age         int            `gorm:"not null" json:"age" example:"30"`
	DateOfBirth datatypes.Date `gorm:"not null" json:"date_of_birth" swaggertype:"string" example:"1994-05-01"`
	Profession  *string        `json:"profession"`
	BloodType   string         `gorm:"not null" json:"blood_type" example:"O+"`
	Weight      float64        `gorm:"type:numeric;not null" json:"weight" example:"65.5"`
	Height      float64        `gorm:"type:numeric;not null" json:"height" example:"170"`

	// Communication
	SpeaksPrimary     bool    `gorm:"column:speaks_primary;not null" json:"speaks_primary"`
	OtherLanguage     *string `json:"other_language"`
	VisualImpairment  bool    `gorm:"not null" json:"visual_impairment"`
	HearingImpairment bool    `gorm:"not null" json:"hearing_impairment"`
	SpeechImpairment  bool    `gorm:"not null" json:"speech_impairment"`

	// Medical history: neurological
	Stroke      bool `gorm:"not null" json:"stroke"`
	Seizures    bool `gorm:"not null" json:"seizures"`
	Hemiparesis bool `gorm:"not null" json:"hemiparesis"`

	// Medical history: cardiovascular
	Hypertension         bool    `gorm:"not null" json:"hypertension"`
	Cardiopathy          bool    `gorm:"not null" json:"cardiopathy"`
	SwollenFeet          bool    `gorm:"not null" json:"swollen_feet"`
	FatigueStairs        bool    `gorm:"not null" json:"fatigue_stairs"`
	VaricoseVeins        bool    `gorm:"not null" json:"varicose_veins"`
	MyocardialInfarction bool    `gorm:"not null" json:"myocardial_infarction"`
	ChestPain            bool    `gorm:"not null" json:"chest_pain"`
	IrregularHeartbeat   bool    `gorm:"not null" json:"irregular_heartbeat"`
	CardiacPacemaker     bool    `gorm:"not null" json:"cardiac_pacemaker"`
	PacemakerType        *string `json:"pacemaker_type"`
	Valvulopathy         bool    `gorm:"not null" json:"valvulopathy"`

	// Medical history: pulmonary
	Bronchitis        bool `gorm:"not null" json:"bronchitis"`
	RespiratoryVirus  bool `gorm:"not null" json:"respiratory_virus"`
	ShortnessOfBreath bool `gorm:"not null" json:"shortness_of_breath"`
	Tuberculosis      bool `gorm:"not null" json:"tuberculosis"`
	Smoker            bool `gorm:"not null" json:"smoker"`
	CigarettesPerDay  *int `json:"cigarettes_per_day"`

	// Medical history: hepatic / gastric
	Hepatitis    bool `gorm:"not null" json:"hepatitis"`
	GastricUlcer bool `gorm:"not null" json:"gastric_ulcer"`
	Diabetes     bool `gorm:"not null" json:"diabetes"`

	// Medical history: hematological
	Hemophilia     bool `gorm:"not null" json:"hemophilia"`
	RecentBleeding bool `gorm:"not null" json:"recent_bleeding"`
	Anemia         bool `gorm:"not null" json:"anemia"`
	HIVInfection   bool `gorm:"column:hiv_infection;not null" json:"hiv_infection"`

	// Medical history: other
	SpinalProblems        bool    `gorm:"not null" json:"spinal_problems"`
	KidneyDisease         bool    `gorm:"not null" json:"kidney_disease"`
	ThyroidDisease        bool    `gorm:"not null" json:"thyroid_disease"`
	MyastheniaGravis      bool    `gorm:"not null" json:"myasthenia_gravis"`
	DuchenneDisease       bool    `gorm:"not null" json:"duchenne_disease"`
	RheumaticDiseases     bool    `gorm:"not null" json:"rheumatic_diseases"`
	AccidentsTrauma       bool    `gorm:"not null" json:"accidents_trauma"`
	PsychiatricConditions bool    `gorm:"not null" json:"psychiatric_conditions"`
	OtherConditions       *string `json:"other_conditions"`

	// Additional information
	CulturalRestrictions    bool    `gorm:"not null" json:"cultural_restrictions"`
	RecentInfectiousContact bool    `gorm:"not null" json:"recent_infectious_contact"`
	Pregnancy               bool    `gorm:"not null" json:"pregnancy"`
	PregnancyWeeks          *int    `json:"pregnancy_weeks"`
	MedicationLastMonth     *string `json:"medication_last_month"`
	PreviousSurgeries       bool    `gorm:"not null" json:"previous_surgeries"`
}

func (EvaluationRecord) TableName() string {
	return "evaluation_forms"
}
