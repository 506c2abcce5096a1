package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCRMUsage(t *testing.T) {
	tests := []struct {
		input    string
		expected CRMUsage
	}{
		{"systematic", CRMSystematic},
		{"  Sometimes ", CRMSometimes},
		{"no", CRMRarely},
		{"no-crm", CRMNone},
		{"always", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCRMUsage(tt.input))
		})
	}
}

func TestAnswerRecord_TriStateDefaults(t *testing.T) {
	var a AnswerRecord

	assert.False(t, a.HasCAC())
	assert.False(t, a.HasFollowUpSystem())
	assert.False(t, a.HasPlaybook())
	assert.False(t, a.HasDashboards())

	a.FollowUpSystem = Bool(false)
	a.Playbook = Bool(true)
	a.CAC = Float(0)

	assert.False(t, a.HasFollowUpSystem())
	assert.True(t, a.HasPlaybook())
	assert.False(t, a.HasCAC(), "zero CAC counts as not provided")

	a.CAC = Float(450)
	assert.True(t, a.HasCAC())
}

func TestAnswerRecord_JSONUsesQuestionIDs(t *testing.T) {
	a := AnswerRecord{
		LeadsVolume: 150,
		ShowUpRate:  70,
		CRMUsage:    CRMSometimes,
		Playbook:    Bool(false),
	}

	data, err := json.Marshal(a)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, 150.0, raw["leads_volume"])
	assert.Equal(t, 70.0, raw["show_up_rate"])
	assert.Equal(t, "sometimes", raw["crm_usage"])
	assert.Equal(t, false, raw["playbook"])
	assert.NotContains(t, raw, "cac")
	assert.NotContains(t, raw, "dashboards")
}
