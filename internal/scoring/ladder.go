package scoring

// rung is one step of a threshold ladder.
type rung struct {
	threshold float64
	points    int
}

// ladder is a monotonic step function over a metric. Rungs are ordered from the
// highest threshold down; the first rung the value reaches awards its points and no
// lower rung is added.
type ladder struct {
	strict bool // compare with > instead of >=
	rungs  []rung
}

func atLeast(rungs ...rung) ladder {
	return ladder{rungs: rungs}
}

func above(rungs ...rung) ladder {
	return ladder{strict: true, rungs: rungs}
}

func (l ladder) points(value float64) int {
	for _, r := range l.rungs {
		if l.reaches(value, r.threshold) {
			return r.points
		}
	}
	return 0
}

func (l ladder) reaches(value, threshold float64) bool {
	if l.strict {
		return value > threshold
	}
	return value >= threshold
}

// best returns the highest award on the ladder.
func (l ladder) best() int {
	best := 0
	for _, r := range l.rungs {
		if r.points > best {
			best = r.points
		}
	}
	return best
}
