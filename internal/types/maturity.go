package types

// Pillar identifies one of the four scoring categories.
type Pillar string

// Scoring pillars, in questionnaire order.
const (
	PillarAcquisition Pillar = "acquisition"
	PillarProspection Pillar = "prospection"
	PillarConversion  Pillar = "conversion"
	PillarStructure   Pillar = "structure"
)

// AllPillars returns the pillars in questionnaire order.
func AllPillars() []Pillar {
	return []Pillar{PillarAcquisition, PillarProspection, PillarConversion, PillarStructure}
}

// Pillars holds the per-pillar sub-scores.
type Pillars struct {
	Acquisition int `json:"acquisition"`
	Prospection int `json:"prospection"`
	Conversion  int `json:"conversion"`
	Structure   int `json:"structure"`
}

// Sum returns the unclamped total of the four pillars.
func (p Pillars) Sum() int {
	return p.Acquisition + p.Prospection + p.Conversion + p.Structure
}

// Get returns the sub-score for a pillar, or 0 for an unknown pillar.
func (p Pillars) Get(pillar Pillar) int {
	switch pillar {
	case PillarAcquisition:
		return p.Acquisition
	case PillarProspection:
		return p.Prospection
	case PillarConversion:
		return p.Conversion
	case PillarStructure:
		return p.Structure
	}
	return 0
}

// MaturityScore is the 0-100 composite and its pillar breakdown.
type MaturityScore struct {
	Total   int     `json:"total"`
	Pillars Pillars `json:"pillars"`
}
