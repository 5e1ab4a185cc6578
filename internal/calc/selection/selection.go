package selection

import (
	"fmt"
	"sort"

	"Ferrex/internal/calc/tramp"
	"Ferrex/internal/repo"
)

// Input describes the duty a catalog magnet must cover.
type Input struct {
	BeltWidthMM  float64           `json:"belt_width_mm"`
	GapMM        float64           `json:"gap_mm"`
	Geometry     tramp.Geometry    `json:"geometry"`
	Orientation  tramp.Orientation `json:"orientation"`
	Burden       tramp.Burden      `json:"burden"`
	SafetyFactor float64           `json:"safety_factor"`
}

type ScoredEntry struct {
	Entry  repo.CatalogRow `json:"entry"`
	Pickup tramp.Result    `json:"pickup"`
}

type Result struct {
	Entries []ScoredEntry `json:"entries"`
}

// Score evaluates every catalog row against the duty using the preferred
// force-factor pickup path, drops magnets narrower than the belt and
// rows the evaluator rejects, and ranks the rest by confidence, then by
// margin ratio.
func Score(rows []repo.CatalogRow, in Input) (Result, error) {
	if len(rows) == 0 {
		return Result{}, fmt.Errorf("catalog is empty")
	}

	var entries []ScoredEntry
	for _, row := range rows {
		if row.WidthMM < in.BeltWidthMM {
			continue
		}
		res, err := tramp.PickupFromForceFactor(in.Geometry, in.Orientation, in.Burden, in.SafetyFactor, row.ForceFactorN, in.GapMM)
		if err != nil {
			continue
		}
		entries = append(entries, ScoredEntry{Entry: row, Pickup: res})
	}
	if len(entries) == 0 {
		return Result{}, fmt.Errorf("no catalog entry covers belt width %.0f mm", in.BeltWidthMM)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Pickup, entries[j].Pickup
		if a.ConfidencePct != b.ConfidencePct {
			return a.ConfidencePct > b.ConfidencePct
		}
		return a.MarginRatio > b.MarginRatio
	})
	return Result{Entries: entries}, nil
}
