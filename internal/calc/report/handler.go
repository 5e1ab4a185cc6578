package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"Ferrex/internal/calc/separator"

	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Project  string           `json:"project"`
	Customer string           `json:"customer"`
	Author   string           `json:"author"`
	Title    string           `json:"title"`
	Inputs   separator.Inputs `json:"inputs"`
}

type Handler struct{}

// Datasheet runs the enhanced pipeline for the submitted duty and
// renders an A4 datasheet PDF.
func (h *Handler) Datasheet(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Title == "" {
		input.Title = "Magnetic Separator Datasheet"
	}
	res := separator.CalculateEnhanced(input.Inputs)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Customer: %s", input.Customer))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Prepared by: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 10)
	}
	row := func(label, value string) {
		pdf.CellFormat(70, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
	}

	g := input.Inputs.Geometric
	m := input.Inputs.Magnetic
	section("Duty Parameters")
	row("Belt width", fmt.Sprintf("%.0f mm", g.BeltWidthMM))
	row("Belt speed", fmt.Sprintf("%.1f m/s", g.BeltSpeedMS))
	row("Feed rate", fmt.Sprintf("%.0f t/h", g.FeedRateTPH))
	row("Burden depth", fmt.Sprintf("%.0f mm", g.LayerThicknessMM))
	row("Operating gap", fmt.Sprintf("%.0f mm", m.GapMM))
	pdf.Ln(4)

	section("Magnetic Field")
	row("Flux density", fmt.Sprintf("%.3f T (%.0f G)", res.Field.FluxDensityT, res.Field.SurfaceGauss))
	row("Ampere-turns", fmt.Sprintf("%.0f", res.Field.AmpereTurns))
	row("Penetration depth", fmt.Sprintf("%.0f mm", res.Field.PenetrationDepthMM))
	pdf.Ln(4)

	section("Tramp Removal Efficiency")
	row("Overall", fmt.Sprintf("%.1f%%", res.Efficiency.Overall*100))
	row("Fine (<10 mm)", fmt.Sprintf("%.1f%%", res.Efficiency.Fine*100))
	row("Medium (10-20 mm)", fmt.Sprintf("%.1f%%", res.Efficiency.Medium*100))
	row("Large (>20 mm)", fmt.Sprintf("%.1f%%", res.Efficiency.Large*100))
	pdf.Ln(4)

	section("Thermal Performance")
	row("Coil power loss", fmt.Sprintf("%.0f W", res.Thermal.PowerLossW))
	row("Temperature rise", fmt.Sprintf("%.0f C", res.Thermal.TemperatureRiseC))
	row("Cooling efficiency", fmt.Sprintf("%.0f%%", res.Thermal.CoolingEfficiency*100))
	pdf.Ln(4)

	section("Recommended Model")
	row(res.Recommendation.Model, fmt.Sprintf("score %.0f", res.Recommendation.Score))
	for _, alt := range res.Recommendation.Alternatives {
		row("Alternative: "+alt.Model, fmt.Sprintf("score %.0f", alt.Score))
	}

	if len(res.Validation.Issues) > 0 {
		pdf.Ln(4)
		section("Validation Notes")
		for _, issue := range res.Validation.Issues {
			pdf.MultiCell(0, 5, fmt.Sprintf("[%s] %s", issue.Severity, issue.Message), "", "L", false)
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"datasheet.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}
