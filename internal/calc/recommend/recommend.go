package recommend

import "sort"

// Input carries the duty parameters the rule table conditions on.
type Input struct {
	BeltWidthMM   float64 `json:"belt_width_mm"`
	ThroughputTPH float64 `json:"throughput_tph"`
	GapMM         float64 `json:"gap_mm"`
	TemperatureC  float64 `json:"temperature_c"`
	CoreBeltRatio float64 `json:"core_belt_ratio"`
}

type Scored struct {
	Model string  `json:"model"`
	Score float64 `json:"score"`
}

type Result struct {
	Model        string   `json:"model"`
	Score        float64  `json:"score"`
	Alternatives []Scored `json:"alternatives"`
}

type bonus struct {
	when  func(Input) bool
	value float64
}

type model struct {
	name    string
	base    float64
	bonuses []bonus
}

// The recommender is a fixed decision table, evaluated in order. Scores
// are relative fit, not a physical quantity.
var models = []model{
	{
		name: "CB-60 cross-belt",
		base: 50,
		bonuses: []bonus{
			{func(in Input) bool { return in.BeltWidthMM <= 900 }, 15},
			{func(in Input) bool { return in.ThroughputTPH <= 250 }, 10},
			{func(in Input) bool { return in.GapMM <= 200 }, 5},
		},
	},
	{
		name: "CB-90 cross-belt",
		base: 55,
		bonuses: []bonus{
			{func(in Input) bool { return in.BeltWidthMM > 900 && in.BeltWidthMM <= 1400 }, 15},
			{func(in Input) bool { return in.GapMM <= 250 }, 5},
		},
	},
	{
		name: "OCW-28 overhead",
		base: 45,
		bonuses: []bonus{
			{func(in Input) bool { return in.GapMM <= 200 }, 10},
			{func(in Input) bool { return in.CoreBeltRatio >= 0.6 }, 10},
			{func(in Input) bool { return in.TemperatureC <= 40 }, 3},
		},
	},
	{
		name: "OCW-38 overhead",
		base: 48,
		bonuses: []bonus{
			{func(in Input) bool { return in.BeltWidthMM > 1400 }, 12},
			{func(in Input) bool { return in.ThroughputTPH > 600 }, 10},
			{func(in Input) bool { return in.TemperatureC > 40 }, 5},
		},
	},
	{
		name: "OCW-48 overhead",
		base: 42,
		bonuses: []bonus{
			{func(in Input) bool { return in.BeltWidthMM >= 1800 }, 18},
			{func(in Input) bool { return in.GapMM > 250 }, 10},
			{func(in Input) bool { return in.ThroughputTPH > 900 }, 8},
		},
	},
}

// Pick scores every model against the duty and returns the best fit plus
// the next three as alternatives.
func Pick(in Input) Result {
	scored := make([]Scored, 0, len(models))
	for _, m := range models {
		s := m.base
		for _, b := range m.bonuses {
			if b.when(in) {
				s += b.value
			}
		}
		scored = append(scored, Scored{Model: m.name, Score: s})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	alt := scored[1:]
	if len(alt) > 3 {
		alt = alt[:3]
	}
	return Result{Model: scored[0].Model, Score: scored[0].Score, Alternatives: alt}
}
