package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/SylvinIsamaza/lung-cancer/internal/errors"
)

// FeatureOrder is the exact column order the classifier was trained on.
// Vector construction must follow this order; reordering silently corrupts
// predictions, so it lives here as a named constant rather than relying on
// struct declaration order.
var FeatureOrder = [17]string{
	"AGE",
	"GENDER",
	"SMOKING",
	"FINGER_DISCOLORATION",
	"MENTAL_STRESS",
	"EXPOSURE_TO_POLLUTION",
	"LONG_TERM_ILLNESS",
	"ENERGY_LEVEL",
	"IMMUNE_WEAKNESS",
	"BREATHING_ISSUE",
	"ALCOHOL_CONSUMPTION",
	"THROAT_DISCOMFORT",
	"OXYGEN_SATURATION",
	"CHEST_TIGHTNESS",
	"FAMILY_HISTORY",
	"SMOKING_FAMILY_HISTORY",
	"STRESS_IMMUNE",
}

// FeatureCount is the width of the classifier's input vector.
const FeatureCount = len(FeatureOrder)

// PatientInput is the inbound survey payload. Fields are pointers so a missing
// key is distinguishable from a zero value; attribution and timestamps are
// deliberately absent, they are assigned server-side only.
type PatientInput struct {
	Age                  *int     `json:"AGE"`
	Gender               *int     `json:"GENDER"`
	Smoking              *int     `json:"SMOKING"`
	FingerDiscoloration  *int     `json:"FINGER_DISCOLORATION"`
	MentalStress         *int     `json:"MENTAL_STRESS"`
	ExposureToPollution  *int     `json:"EXPOSURE_TO_POLLUTION"`
	LongTermIllness      *int     `json:"LONG_TERM_ILLNESS"`
	EnergyLevel          *float64 `json:"ENERGY_LEVEL"`
	ImmuneWeakness       *int     `json:"IMMUNE_WEAKNESS"`
	BreathingIssue       *int     `json:"BREATHING_ISSUE"`
	AlcoholConsumption   *int     `json:"ALCOHOL_CONSUMPTION"`
	ThroatDiscomfort     *int     `json:"THROAT_DISCOMFORT"`
	OxygenSaturation     *float64 `json:"OXYGEN_SATURATION"`
	ChestTightness       *int     `json:"CHEST_TIGHTNESS"`
	FamilyHistory        *int     `json:"FAMILY_HISTORY"`
	SmokingFamilyHistory *int     `json:"SMOKING_FAMILY_HISTORY"`
	StressImmune         *int     `json:"STRESS_IMMUNE"`
}

// Validate checks that every survey feature is present, reporting the first
// missing field in FeatureOrder. It runs before the classifier or storage is
// touched.
func (p *PatientInput) Validate() error {
	for i, field := range []interface{}{
		p.Age, p.Gender, p.Smoking, p.FingerDiscoloration, p.MentalStress,
		p.ExposureToPollution, p.LongTermIllness, p.EnergyLevel,
		p.ImmuneWeakness, p.BreathingIssue, p.AlcoholConsumption,
		p.ThroatDiscomfort, p.OxygenSaturation, p.ChestTightness,
		p.FamilyHistory, p.SmokingFamilyHistory, p.StressImmune,
	} {
		missing := false
		switch v := field.(type) {
		case *int:
			missing = v == nil
		case *float64:
			missing = v == nil
		}
		if missing {
			return errors.ValidationErrorf("field %s is required", FeatureOrder[i])
		}
	}
	return nil
}

// Vector returns the 17-element feature vector in FeatureOrder.
// Validate must have succeeded first.
func (p *PatientInput) Vector() []float64 {
	return []float64{
		float64(*p.Age),
		float64(*p.Gender),
		float64(*p.Smoking),
		float64(*p.FingerDiscoloration),
		float64(*p.MentalStress),
		float64(*p.ExposureToPollution),
		float64(*p.LongTermIllness),
		*p.EnergyLevel,
		float64(*p.ImmuneWeakness),
		float64(*p.BreathingIssue),
		float64(*p.AlcoholConsumption),
		float64(*p.ThroatDiscomfort),
		*p.OxygenSaturation,
		float64(*p.ChestTightness),
		float64(*p.FamilyHistory),
		float64(*p.SmokingFamilyHistory),
		float64(*p.StressImmune),
	}
}

// PatientRecord is the persisted survey row: the features the caller submitted
// plus server-assigned attribution and the classifier result. Append-only.
type PatientRecord struct {
	ID                   uuid.UUID `json:"id" db:"id"`
	Age                  int       `json:"AGE" db:"age"`
	Gender               int       `json:"GENDER" db:"gender"`
	Smoking              int       `json:"SMOKING" db:"smoking"`
	FingerDiscoloration  int       `json:"FINGER_DISCOLORATION" db:"finger_discoloration"`
	MentalStress         int       `json:"MENTAL_STRESS" db:"mental_stress"`
	ExposureToPollution  int       `json:"EXPOSURE_TO_POLLUTION" db:"exposure_to_pollution"`
	LongTermIllness      int       `json:"LONG_TERM_ILLNESS" db:"long_term_illness"`
	EnergyLevel          float64   `json:"ENERGY_LEVEL" db:"energy_level"`
	ImmuneWeakness       int       `json:"IMMUNE_WEAKNESS" db:"immune_weakness"`
	BreathingIssue       int       `json:"BREATHING_ISSUE" db:"breathing_issue"`
	AlcoholConsumption   int       `json:"ALCOHOL_CONSUMPTION" db:"alcohol_consumption"`
	ThroatDiscomfort     int       `json:"THROAT_DISCOMFORT" db:"throat_discomfort"`
	OxygenSaturation     float64   `json:"OXYGEN_SATURATION" db:"oxygen_saturation"`
	ChestTightness       int       `json:"CHEST_TIGHTNESS" db:"chest_tightness"`
	FamilyHistory        int       `json:"FAMILY_HISTORY" db:"family_history"`
	SmokingFamilyHistory int       `json:"SMOKING_FAMILY_HISTORY" db:"smoking_family_history"`
	StressImmune         int       `json:"STRESS_IMMUNE" db:"stress_immune"`
	RecordedBy           string    `json:"RECORDED_BY" db:"recorded_by"`
	RecordedDate         string    `json:"RECORDED_DATE" db:"recorded_date"`
	CreatedAt            time.Time `json:"CREATED_AT" db:"created_at"`
	Result               float64   `json:"RESULT" db:"result"`
}

// NewPatientRecord builds the persisted record from a validated input,
// stamping attribution and timestamps server-side. Any client-supplied
// attribution never reaches this constructor.
func NewPatientRecord(input *PatientInput, recordedBy string, now time.Time) *PatientRecord {
	return &PatientRecord{
		ID:                   uuid.New(),
		Age:                  *input.Age,
		Gender:               *input.Gender,
		Smoking:              *input.Smoking,
		FingerDiscoloration:  *input.FingerDiscoloration,
		MentalStress:         *input.MentalStress,
		ExposureToPollution:  *input.ExposureToPollution,
		LongTermIllness:      *input.LongTermIllness,
		EnergyLevel:          *input.EnergyLevel,
		ImmuneWeakness:       *input.ImmuneWeakness,
		BreathingIssue:       *input.BreathingIssue,
		AlcoholConsumption:   *input.AlcoholConsumption,
		ThroatDiscomfort:     *input.ThroatDiscomfort,
		OxygenSaturation:     *input.OxygenSaturation,
		ChestTightness:       *input.ChestTightness,
		FamilyHistory:        *input.FamilyHistory,
		SmokingFamilyHistory: *input.SmokingFamilyHistory,
		StressImmune:         *input.StressImmune,
		RecordedBy:           recordedBy,
		RecordedDate:         now.Format("2006-01-02 15:04:05"),
		CreatedAt:            now,
	}
}

// RiskAssessment is the per-request classifier outcome. It is embedded in the
// response and its probability is persisted as the record result; it is never
// stored as its own row.
type RiskAssessment struct {
	RiskLevel   string  `json:"risk_level"`
	Probability float64 `json:"probability"`
}
