package ui

import (
	"fmt"

	"github.com/forest-guardian/landcover-samples/internal/quality"
)

// EvaluatePrediction compares a classified raster with reference labels.
func EvaluatePrediction() {
	PrintWarning("Reference labels are read from data/labels and predictions from data/predictions.\nBoth rasters must have the same size.")

	truth, err := SelectFile("Label rasters", "labels", rasterExts...)
	if err != nil {
		PrintError(err.Error())
		return
	}
	pred, err := SelectFile("Prediction rasters", "predictions", rasterExts...)
	if err != nil {
		PrintError(err.Error())
		return
	}

	ev, err := quality.EvaluateRasters(truth, pred, true)
	if err != nil {
		fail("Error evaluating prediction", err)
		return
	}
	fmt.Printf("\n  Overall accuracy: %.2f%%\n  Kappa: %.4f\n", ev.Accuracy*100, ev.Kappa)
	for _, c := range ev.Classes {
		fmt.Printf("  %d %-50s P %6.2f  R %6.2f  F1 %6.2f  (%d)\n", c.Label, c.Name, c.Precision, c.Recall, c.F1, c.Support)
	}

	md, csv, err := ev.SaveReport(quality.ReportsDir())
	if err != nil {
		fail("Error saving report", err)
		return
	}
	succeed(fmt.Sprintf("Quality report saved: %s, %s", md, csv))
}
