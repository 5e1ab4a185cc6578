package batch

import (
	"fmt"

	tramp "Ferrex/internal/calc/tramp"
)

type PickupBatchInput struct {
	Items []tramp.Input `json:"items"`
}

type PickupBatchResult struct {
	Results []tramp.Result `json:"results"`
}

func CalculatePickup(in PickupBatchInput) (PickupBatchResult, error) {
	if len(in.Items) == 0 {
		return PickupBatchResult{}, fmt.Errorf("no items")
	}
	out := PickupBatchResult{Results: make([]tramp.Result, 0, len(in.Items))}
	for _, item := range in.Items {
		res, err := tramp.Evaluate(item)
		if err != nil {
			return PickupBatchResult{}, err
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
