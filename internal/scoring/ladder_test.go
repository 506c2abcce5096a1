package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLadder_AtLeastIsInclusive(t *testing.T) {
	l := atLeast(rung{70, 15}, rung{50, 8}, rung{30, 3})

	tests := []struct {
		value    float64
		expected int
	}{
		{100, 15},
		{70, 15},
		{69.9, 8},
		{50, 8},
		{30, 3},
		{29.9, 0},
		{0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, l.points(tt.value), "value %v", tt.value)
	}
}

func TestLadder_AboveIsStrict(t *testing.T) {
	l := above(rung{50, 5}, rung{30, 3}, rung{10, 1})

	assert.Equal(t, 5, l.points(51))
	assert.Equal(t, 3, l.points(50))
	assert.Equal(t, 3, l.points(31))
	assert.Equal(t, 1, l.points(30))
	assert.Equal(t, 1, l.points(11))
	assert.Equal(t, 0, l.points(10))
}

func TestLadder_TiersAreNotCumulative(t *testing.T) {
	l := atLeast(rung{40, 15}, rung{30, 10}, rung{20, 5}, rung{10, 2})
	assert.Equal(t, 15, l.points(90))
}

func TestLadder_BestMatchesPillarCaps(t *testing.T) {
	acq := qualificationLadder.best() + leadVolumeLadder.best() + cacPoints + outboundPoints
	pro := outboundVolumeLadder.best() + responseRateLadder.best() + followUpPoints
	con := closingRateLadder.best() + showUpRateLadder.best() + salesRepsLadder.best() + averageDealLadder.best()
	str := crmPoints("systematic") + playbookPoints + dashboardsPoints

	assert.Equal(t, MaxAcquisition, acq)
	assert.Equal(t, MaxProspection, pro)
	assert.Equal(t, MaxConversion, con)
	assert.Equal(t, MaxStructure, str)
	assert.Equal(t, MaxTotal+30, acq+pro+con+str, "pillar caps add up past the total clamp")
}
