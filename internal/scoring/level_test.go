package scoring

import (
	"testing"

	"github.com/jonathan/sales-diagnostic/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, LevelLow, Level(0))
	assert.Equal(t, LevelLow, Level(39))
	assert.Equal(t, LevelAverage, Level(40))
	assert.Equal(t, LevelStrong, Level(60))
	assert.Equal(t, LevelAdvanced, Level(80))
	assert.Equal(t, LevelAdvanced, Level(100))
}

func TestWeaknesses(t *testing.T) {
	w := Weaknesses(referenceAnswers())
	assert.Equal(t, []string{"Manque de rigueur CRM", "Absence de Book de Vente"}, w)

	all := Weaknesses(types.AnswerRecord{})
	assert.Len(t, all, 4)

	none := Weaknesses(types.AnswerRecord{
		CRMUsage:    types.CRMSystematic,
		Playbook:    types.Bool(true),
		ClosingRate: 30,
		ShowUpRate:  80,
	})
	assert.Empty(t, none)
	assert.NotNil(t, none)
}
