package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func validInput() *PatientInput {
	return &PatientInput{
		Age:                  intPtr(64),
		Gender:               intPtr(1),
		Smoking:              intPtr(1),
		FingerDiscoloration:  intPtr(0),
		MentalStress:         intPtr(1),
		ExposureToPollution:  intPtr(1),
		LongTermIllness:      intPtr(0),
		EnergyLevel:          floatPtr(43.2),
		ImmuneWeakness:       intPtr(0),
		BreathingIssue:       intPtr(1),
		AlcoholConsumption:   intPtr(0),
		ThroatDiscomfort:     intPtr(1),
		OxygenSaturation:     floatPtr(94.6),
		ChestTightness:       intPtr(1),
		FamilyHistory:        intPtr(1),
		SmokingFamilyHistory: intPtr(0),
		StressImmune:         intPtr(0),
	}
}

func TestVector_FollowsFeatureOrder(t *testing.T) {
	input := validInput()
	require.NoError(t, input.Validate())

	vector := input.Vector()
	require.Len(t, vector, FeatureCount)

	expected := []float64{64, 1, 1, 0, 1, 1, 0, 43.2, 0, 1, 0, 1, 94.6, 1, 1, 0, 0}
	assert.Equal(t, expected, vector)
}

func TestVector_PermutationChangesOnlyThosePositions(t *testing.T) {
	base := validInput().Vector()

	// Swap the values of two fields; only their vector positions may change.
	swapped := validInput()
	swapped.Age, swapped.ChestTightness = swapped.ChestTightness, swapped.Age
	permuted := swapped.Vector()

	ageIdx := indexOf(t, "AGE")
	chestIdx := indexOf(t, "CHEST_TIGHTNESS")
	require.NotEqual(t, base[ageIdx], base[chestIdx])

	for i := range base {
		switch i {
		case ageIdx:
			assert.Equal(t, base[chestIdx], permuted[i], "AGE position should carry CHEST_TIGHTNESS value")
		case chestIdx:
			assert.Equal(t, base[ageIdx], permuted[i], "CHEST_TIGHTNESS position should carry AGE value")
		default:
			assert.Equal(t, base[i], permuted[i], "position %d (%s) must be untouched", i, FeatureOrder[i])
		}
	}
}

func indexOf(t *testing.T, name string) int {
	t.Helper()
	for i, n := range FeatureOrder {
		if n == name {
			return i
		}
	}
	t.Fatalf("feature %s not in FeatureOrder", name)
	return -1
}

func TestValidate_MissingField(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*PatientInput)
		wantsErr string
	}{
		{"missing AGE", func(p *PatientInput) { p.Age = nil }, "AGE"},
		{"missing ENERGY_LEVEL", func(p *PatientInput) { p.EnergyLevel = nil }, "ENERGY_LEVEL"},
		{"missing OXYGEN_SATURATION", func(p *PatientInput) { p.OxygenSaturation = nil }, "OXYGEN_SATURATION"},
		{"missing STRESS_IMMUNE", func(p *PatientInput) { p.StressImmune = nil }, "STRESS_IMMUNE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			err := input.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantsErr)
		})
	}
}

func TestValidate_CompleteInput(t *testing.T) {
	assert.NoError(t, validInput().Validate())
}

func TestPatientInput_RejectsNonNumericJSON(t *testing.T) {
	var input PatientInput
	err := json.Unmarshal([]byte(`{"AGE": "sixty-four"}`), &input)
	assert.Error(t, err)
}

func TestPatientInput_HasNoAttributionFields(t *testing.T) {
	// Client-supplied attribution must be structurally impossible: decoding a
	// payload that smuggles RECORDED_BY simply drops it.
	var input PatientInput
	err := json.Unmarshal([]byte(`{"AGE": 30, "RECORDED_BY": "mallory", "RESULT": 0.99}`), &input)
	require.NoError(t, err)

	data, err := json.Marshal(&input)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "mallory")
	assert.NotContains(t, string(data), "RESULT\":0.99")
}

func TestNewPatientRecord_ServerSideStamping(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	record := NewPatientRecord(validInput(), "alice", now)

	assert.Equal(t, "alice", record.RecordedBy)
	assert.Equal(t, now, record.CreatedAt)
	assert.Equal(t, "2025-03-14 09:26:53", record.RecordedDate)
	assert.NotEqual(t, record.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, 64, record.Age)
	assert.Equal(t, 43.2, record.EnergyLevel)
}
