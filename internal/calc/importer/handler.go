package importer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"Ferrex/internal/calc/tramp"

	"github.com/xuri/excelize/v2"
)

type Handler struct{}

type PickupImportResult struct {
	Count   int            `json:"count"`
	Results []tramp.Result `json:"results"`
}

// Pickup evaluates a spreadsheet of tramp scenarios, one row each. Rows
// that fail to parse or evaluate are skipped.
func (h *Handler) Pickup(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	var results []tramp.Result
	for i := 1; i < len(rows); i++ {
		input, err := parsePickupRow(rows[i])
		if err != nil {
			continue
		}
		res, err := tramp.Evaluate(input)
		if err != nil {
			continue
		}
		results = append(results, res)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PickupImportResult{Count: len(results), Results: results})
}

func parsePickupRow(row []string) (tramp.Input, error) {
	// expected: shape, length_mm, width_mm, thickness_mm, cube_size_mm,
	// orientation, burden, force_factor_n, gap_mm, safety_factor(optional)
	if len(row) < 9 {
		return tramp.Input{}, fmt.Errorf("bad row")
	}
	length, _ := toFloat(row[1])
	width, _ := toFloat(row[2])
	thickness, _ := toFloat(row[3])
	cube, _ := toFloat(row[4])
	ff, err := toFloat(row[7])
	if err != nil {
		return tramp.Input{}, err
	}
	gap, err := toFloat(row[8])
	if err != nil {
		return tramp.Input{}, err
	}
	safety := 0.0
	if len(row) > 9 && row[9] != "" {
		safety, _ = toFloat(row[9])
	}
	return tramp.Input{
		Geometry: tramp.Geometry{
			Shape:       tramp.Shape(row[0]),
			LengthMM:    length,
			WidthMM:     width,
			ThicknessMM: thickness,
			CubeSizeMM:  cube,
		},
		Orientation:  tramp.Orientation(row[5]),
		Burden:       tramp.Burden(row[6]),
		SafetyFactor: safety,
		ForceFactorN: ff,
		GapMM:        gap,
	}, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
