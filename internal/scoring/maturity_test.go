package scoring

import (
	"math/rand"
	"testing"

	"github.com/jonathan/sales-diagnostic/internal/types"
	"github.com/stretchr/testify/assert"
)

// referenceAnswers is the worked example from the product brief.
func referenceAnswers() types.AnswerRecord {
	return types.AnswerRecord{
		LeadsVolume:    150,
		QualifiedRate:  40,
		OutboundVolume: 0,
		ResponseRate:   0,
		FollowUpSystem: types.Bool(false),
		ShowUpRate:     70,
		ClosingRate:    25,
		AverageDeal:    5000,
		SalesReps:      3,
		CRMUsage:       types.CRMSometimes,
		Playbook:       types.Bool(false),
		Dashboards:     types.Bool(false),
	}
}

func TestScore_ReferenceAnswers(t *testing.T) {
	score := Score(referenceAnswers())

	// qualification 40 -> 3, leads 150 -> 5, no CAC, no outbound
	assert.Equal(t, 8, score.Pillars.Acquisition)
	assert.Equal(t, 0, score.Pillars.Prospection)
	// closing 25 -> 5, show-up 70 -> 5, reps 3 -> 5, deal 5000 is not above 5000
	assert.Equal(t, 15, score.Pillars.Conversion)
	assert.Equal(t, 3, score.Pillars.Structure)
	assert.Equal(t, 26, score.Total)
}

func TestScore_EmptyRecord(t *testing.T) {
	score := Score(types.AnswerRecord{})

	assert.Equal(t, types.MaturityScore{}, score)
}

func TestScore_FullyMature(t *testing.T) {
	a := types.AnswerRecord{
		LeadsVolume:    200,
		QualifiedRate:  80,
		CAC:            types.Float(300),
		OutboundVolume: 150,
		ResponseRate:   25,
		FollowUpSystem: types.Bool(true),
		ShowUpRate:     90,
		ClosingRate:    45,
		AverageDeal:    8000,
		SalesReps:      5,
		CRMUsage:       types.CRMSystematic,
		Playbook:       types.Bool(true),
		Dashboards:     types.Bool(true),
	}

	score := Score(a)

	assert.Equal(t, MaxAcquisition, score.Pillars.Acquisition)
	assert.Equal(t, MaxProspection, score.Pillars.Prospection)
	assert.Equal(t, MaxConversion, score.Pillars.Conversion)
	assert.Equal(t, MaxStructure, score.Pillars.Structure)
	assert.Equal(t, MaxTotal, score.Total, "sum of 130 is clamped to 100")
}

func TestScore_AcquisitionSignals(t *testing.T) {
	tests := []struct {
		name     string
		answers  types.AnswerRecord
		expected int
	}{
		{"nothing", types.AnswerRecord{}, 0},
		{"qualification 70", types.AnswerRecord{QualifiedRate: 70}, 15},
		{"qualification 50", types.AnswerRecord{QualifiedRate: 50}, 8},
		{"qualification 30", types.AnswerRecord{QualifiedRate: 30}, 3},
		{"leads 31", types.AnswerRecord{LeadsVolume: 31}, 3},
		{"leads 11", types.AnswerRecord{LeadsVolume: 11}, 1},
		{"leads 10", types.AnswerRecord{LeadsVolume: 10}, 0},
		{"cac provided", types.AnswerRecord{CAC: types.Float(100)}, 5},
		{"cac zero", types.AnswerRecord{CAC: types.Float(0)}, 0},
		{"outbound 1", types.AnswerRecord{OutboundVolume: 1}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(tt.answers).Pillars.Acquisition)
		})
	}
}

func TestScore_ProspectionSignals(t *testing.T) {
	tests := []struct {
		name     string
		answers  types.AnswerRecord
		expected int
	}{
		{"outbound 101", types.AnswerRecord{OutboundVolume: 101}, 10},
		{"outbound 100", types.AnswerRecord{OutboundVolume: 100}, 5},
		{"outbound 50", types.AnswerRecord{OutboundVolume: 50}, 2},
		{"outbound 20", types.AnswerRecord{OutboundVolume: 20}, 0},
		{"response 20", types.AnswerRecord{ResponseRate: 20}, 10},
		{"response 10", types.AnswerRecord{ResponseRate: 10}, 5},
		{"response 5", types.AnswerRecord{ResponseRate: 5}, 2},
		{"response 4.9", types.AnswerRecord{ResponseRate: 4.9}, 0},
		{"follow-up yes", types.AnswerRecord{FollowUpSystem: types.Bool(true)}, 10},
		{"follow-up unanswered", types.AnswerRecord{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(tt.answers).Pillars.Prospection)
		})
	}
}

func TestScore_ConversionSignals(t *testing.T) {
	tests := []struct {
		name     string
		answers  types.AnswerRecord
		expected int
	}{
		{"closing 40", types.AnswerRecord{ClosingRate: 40}, 15},
		{"closing 30", types.AnswerRecord{ClosingRate: 30}, 10},
		{"closing 20", types.AnswerRecord{ClosingRate: 20}, 5},
		{"closing 10", types.AnswerRecord{ClosingRate: 10}, 2},
		{"closing 9", types.AnswerRecord{ClosingRate: 9}, 0},
		{"show-up 85", types.AnswerRecord{ShowUpRate: 85}, 15},
		{"show-up 75", types.AnswerRecord{ShowUpRate: 75}, 10},
		{"show-up 65", types.AnswerRecord{ShowUpRate: 65}, 5},
		{"show-up 50", types.AnswerRecord{ShowUpRate: 50}, 2},
		{"show-up 49", types.AnswerRecord{ShowUpRate: 49}, 0},
		{"reps 3", types.AnswerRecord{SalesReps: 3}, 5},
		{"reps 2", types.AnswerRecord{SalesReps: 2}, 3},
		{"reps 1", types.AnswerRecord{SalesReps: 1}, 0},
		{"deal 5001", types.AnswerRecord{AverageDeal: 5001}, 5},
		{"deal 5000", types.AnswerRecord{AverageDeal: 5000}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(tt.answers).Pillars.Conversion)
		})
	}
}

func TestScore_StructureSignals(t *testing.T) {
	tests := []struct {
		name     string
		answers  types.AnswerRecord
		expected int
	}{
		{"crm systematic", types.AnswerRecord{CRMUsage: types.CRMSystematic}, 10},
		{"crm sometimes", types.AnswerRecord{CRMUsage: types.CRMSometimes}, 3},
		{"crm rarely", types.AnswerRecord{CRMUsage: types.CRMRarely}, 0},
		{"no crm", types.AnswerRecord{CRMUsage: types.CRMNone}, 0},
		{"crm unanswered", types.AnswerRecord{}, 0},
		{"playbook", types.AnswerRecord{Playbook: types.Bool(true)}, 10},
		{"dashboards", types.AnswerRecord{Dashboards: types.Bool(true)}, 10},
		{"playbook no", types.AnswerRecord{Playbook: types.Bool(false)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(tt.answers).Pillars.Structure)
		})
	}
}

func TestScore_InvariantsHoldForRandomRecords(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	crm := []types.CRMUsage{types.CRMSystematic, types.CRMSometimes, types.CRMRarely, types.CRMNone, ""}

	for i := 0; i < 2000; i++ {
		a := randomAnswers(rng, crm)
		score := Score(a)

		assert.GreaterOrEqual(t, score.Total, 0)
		assert.LessOrEqual(t, score.Total, MaxTotal)
		assert.Equal(t, clamp(score.Pillars.Sum(), 0, MaxTotal), score.Total)

		assert.True(t, score.Pillars.Acquisition >= 0 && score.Pillars.Acquisition <= MaxAcquisition)
		assert.True(t, score.Pillars.Prospection >= 0 && score.Pillars.Prospection <= MaxProspection)
		assert.True(t, score.Pillars.Conversion >= 0 && score.Pillars.Conversion <= MaxConversion)
		assert.True(t, score.Pillars.Structure >= 0 && score.Pillars.Structure <= MaxStructure)
	}
}

func TestScore_IsDeterministic(t *testing.T) {
	a := referenceAnswers()
	assert.Equal(t, Score(a), Score(a))
}

func randomAnswers(rng *rand.Rand, crm []types.CRMUsage) types.AnswerRecord {
	a := types.AnswerRecord{
		LeadsVolume:    rng.Float64() * 500,
		QualifiedRate:  rng.Float64() * 100,
		OutboundVolume: rng.Float64() * 300,
		ResponseRate:   rng.Float64() * 100,
		ShowUpRate:     rng.Float64() * 100,
		ClosingRate:    rng.Float64() * 100,
		AverageDeal:    rng.Float64() * 20000,
		SalesReps:      float64(rng.Intn(10)),
		CRMUsage:       crm[rng.Intn(len(crm))],
	}
	if rng.Intn(2) == 0 {
		a.CAC = types.Float(rng.Float64() * 2000)
	}
	if rng.Intn(3) > 0 {
		a.FollowUpSystem = types.Bool(rng.Intn(2) == 0)
		a.Playbook = types.Bool(rng.Intn(2) == 0)
		a.Dashboards = types.Bool(rng.Intn(2) == 0)
	}
	return a
}
