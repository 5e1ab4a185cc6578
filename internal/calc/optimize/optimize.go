package optimize

import (
	"fmt"

	"Ferrex/internal/calc/separator"
)

// Parameter bounds the optimizer will never cross.
const (
	MinGapMM      = 50.0
	MaxGapMM      = 300.0
	MinCoreRatio  = 0.3
	MaxCoreRatio  = 0.9
	MinBeltSpeed  = 0.5
	MaxBeltSpeed  = 4.0
	MinFeedDepth  = 10.0
	MaxFeedDepth  = 200.0
	MaxIterations = 100

	gapStepMM   = 5.0
	ratioStep   = 0.02
	speedStepMS = 0.1
	depthStepMM = 5.0
)

type Input struct {
	Inputs           separator.Inputs `json:"inputs"`
	TargetEfficiency float64          `json:"target_efficiency"`
	MaxIterations    int              `json:"max_iterations"`
}

type Change struct {
	Parameter string  `json:"parameter"`
	From      float64 `json:"from"`
	To        float64 `json:"to"`
}

type Result struct {
	Achieved       bool             `json:"achieved"`
	Iterations     int              `json:"iterations"`
	BestEfficiency float64          `json:"best_efficiency"`
	Tuned          separator.Inputs `json:"tuned"`
	Changes        []Change         `json:"changes"`
}

// Optimize greedily nudges gap, core:belt ratio, belt speed and feed
// depth toward a target overall efficiency. It is a bounded local
// search: per iteration the single best of the four candidate moves is
// applied, and the loop stops at the target, on plateau, or at the
// iteration cap. No convergence is guaranteed.
func Optimize(in Input) (Result, error) {
	if in.TargetEfficiency <= 0 || in.TargetEfficiency > 1 {
		return Result{}, fmt.Errorf("target efficiency must be in (0, 1], got %v", in.TargetEfficiency)
	}
	maxIter := in.MaxIterations
	if maxIter <= 0 || maxIter > MaxIterations {
		maxIter = MaxIterations
	}

	initial := in.Inputs
	cur := in.Inputs
	best := separator.Calculate(cur).Efficiency.Overall

	iterations := 0
	for i := 0; i < maxIter && best < in.TargetEfficiency; i++ {
		iterations++

		var moveBest float64 = -1
		var moveNext separator.Inputs
		for _, cand := range moves(cur) {
			eff := separator.Calculate(cand).Efficiency.Overall
			if eff > moveBest {
				moveBest = eff
				moveNext = cand
			}
		}
		if moveBest <= best {
			break // plateau; every move makes it worse or no move is legal
		}
		cur = moveNext
		best = moveBest
	}

	return Result{
		Achieved:       best >= in.TargetEfficiency,
		Iterations:     iterations,
		BestEfficiency: best,
		Tuned:          cur,
		Changes:        diff(initial, cur),
	}, nil
}

// moves returns the in-bounds single-step candidates from cur.
func moves(cur separator.Inputs) []separator.Inputs {
	var out []separator.Inputs

	if cur.Magnetic.GapMM-gapStepMM >= MinGapMM {
		c := cur
		c.Magnetic.GapMM -= gapStepMM
		out = append(out, c)
	}
	if cur.Magnetic.CoreBeltRatio+ratioStep <= MaxCoreRatio {
		c := cur
		c.Magnetic.CoreBeltRatio += ratioStep
		out = append(out, c)
	}
	if cur.Geometric.BeltSpeedMS-speedStepMS >= MinBeltSpeed {
		c := cur
		c.Geometric.BeltSpeedMS -= speedStepMS
		out = append(out, c)
	}
	if cur.Geometric.LayerThicknessMM-depthStepMM >= MinFeedDepth {
		c := cur
		c.Geometric.LayerThicknessMM -= depthStepMM
		out = append(out, c)
	}
	return out
}

func diff(a, b separator.Inputs) []Change {
	var out []Change
	if a.Magnetic.GapMM != b.Magnetic.GapMM {
		out = append(out, Change{"gap_mm", a.Magnetic.GapMM, b.Magnetic.GapMM})
	}
	if a.Magnetic.CoreBeltRatio != b.Magnetic.CoreBeltRatio {
		out = append(out, Change{"core_belt_ratio", a.Magnetic.CoreBeltRatio, b.Magnetic.CoreBeltRatio})
	}
	if a.Geometric.BeltSpeedMS != b.Geometric.BeltSpeedMS {
		out = append(out, Change{"belt_speed_ms", a.Geometric.BeltSpeedMS, b.Geometric.BeltSpeedMS})
	}
	if a.Geometric.LayerThicknessMM != b.Geometric.LayerThicknessMM {
		out = append(out, Change{"layer_thickness_mm", a.Geometric.LayerThicknessMM, b.Geometric.LayerThicknessMM})
	}
	return out
}
