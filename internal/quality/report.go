package quality

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/forest-guardian/landcover-samples/internal/curation"
	"github.com/forest-guardian/landcover-samples/internal/log"
	"github.com/forest-guardian/landcover-samples/internal/properties"
	"github.com/gocarina/gocsv"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ReportsDir is ROOT_PATH/data/reports.
func ReportsDir() string {
	return properties.DataPath("reports")
}

// Markdown renders an evaluation report.
func (ev *Evaluation) Markdown() string {
	var b strings.Builder
	duration := ev.EndTime.Sub(ev.StartTime)
	fmt.Fprintf(&b, `# Classification Quality Report

## Overview
- **Label raster**: %s
- **Prediction raster**: %s
- **Started**: %s
- **Duration**: %s

## Global Results
- **Samples**: %d
- **Overall Accuracy**: %.2f%%
- **Kappa**: %.4f

`, ev.Truth, ev.Prediction,
		ev.StartTime.Format("2006-01-02 15:04:05"), duration.String(),
		ev.Matrix.Total(), ev.Accuracy*100, ev.Kappa)

	b.WriteString("## Per-Class Quality\n\n")
	b.WriteString("| Code | Class | Precision (%) | Recall (%) | F1 (%) | Support |\n")
	b.WriteString("|---:|---|---:|---:|---:|---:|\n")
	for _, c := range ev.Classes {
		fmt.Fprintf(&b, "| %d | %s | %.2f | %.2f | %.2f | %d |\n", c.Label, c.Name, c.Precision, c.Recall, c.F1, c.Support)
	}

	b.WriteString("\n## Confusion Matrix\n\nReference in rows, prediction in columns.\n\n|  |")
	for _, l := range ev.Matrix.Labels {
		fmt.Fprintf(&b, " %d |", l)
	}
	b.WriteString("\n|---|" + strings.Repeat("---:|", len(ev.Matrix.Labels)) + "\n")
	for i, l := range ev.Matrix.Labels {
		fmt.Fprintf(&b, "| **%d** |", l)
		for _, c := range ev.Matrix.Counts[i] {
			fmt.Fprintf(&b, " %d |", c)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## Assessment\n")
	switch oa := ev.Accuracy * 100; {
	case oa >= 90:
		b.WriteString("- **Excellent**: overall accuracy above 90%\n")
	case oa >= 80:
		b.WriteString("- **Good**: overall accuracy between 80% and 90%\n")
	case oa >= 70:
		b.WriteString("- **Moderate**: overall accuracy between 70% and 80%\n")
	default:
		b.WriteString("- **Poor**: overall accuracy below 70%\n")
	}
	for _, c := range ev.Classes {
		if c.Support > 0 && c.F1 < 50 {
			fmt.Fprintf(&b, "- Class %d (%s) is poorly separated, F1 %.2f%%\n", c.Label, c.Name, c.F1)
		}
	}
	return b.String()
}

// DistributionMarkdown renders a class distribution table.
func DistributionMarkdown(dist []ClassDistribution) string {
	var b strings.Builder
	b.WriteString("# Sample Distribution\n\n")
	b.WriteString("| Code | Class | Pixels | Share (%) | Polygons | Pixels / polygon | Min | Median | Max |\n")
	b.WriteString("|---:|---|---:|---:|---:|---:|---:|---:|---:|\n")
	pixels, polygons := 0, 0
	for _, d := range dist {
		fmt.Fprintf(&b, "| %d | %s | %d | %.2f | %d | %.1f | %.1f | %.1f | %.1f |\n",
			d.Label, d.Name, d.Pixels, d.Share, d.Polygons, d.PixelsPerPolygon, d.MinPolygon, d.MedianPolygon, d.MaxPolygon)
		pixels += d.Pixels
		polygons += d.Polygons
	}
	fmt.Fprintf(&b, "\n- **Total pixels**: %d\n- **Total polygons**: %d\n", pixels, polygons)
	var invalid []string
	for _, d := range dist {
		if !curation.IsValidPixelCode(d.Label) {
			invalid = append(invalid, fmt.Sprint(d.Label))
		}
	}
	if len(invalid) > 0 {
		fmt.Fprintf(&b, "- **Classes outside the training nomenclature**: %s\n", strings.Join(invalid, ", "))
	}
	return b.String()
}

func writeText(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	log.Info(logTag+"report saved", zap.String("path", path))
	return nil
}

// SaveReport writes the markdown report and the per-class CSV into dir,
// named after the start time.
func (ev *Evaluation) SaveReport(dir string) (mdPath, csvPath string, err error) {
	stamp := ev.StartTime.Format("2006-01-02_15-04-05")
	mdPath = filepath.Join(dir, "quality_"+stamp+".md")
	csvPath = filepath.Join(dir, "quality_"+stamp+".csv")
	if err := writeText(mdPath, ev.Markdown()); err != nil {
		return "", "", err
	}
	if err := WriteCSV(csvPath, ev.Classes); err != nil {
		return "", "", err
	}
	return mdPath, csvPath, nil
}

// WriteCSV saves a slice of ClassMetrics or ClassDistribution.
func WriteCSV[T ClassMetrics | ClassDistribution](path string, rows []T) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer func() { err = multierr.Append(err, file.Close()) }()
	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write csv file: %w", err)
	}
	log.Info(logTag+"csv saved", zap.String("path", path), zap.Int("rows", len(rows)))
	return nil
}

func SaveDistribution(dir string, dist []ClassDistribution) (mdPath, csvPath string, err error) {
	mdPath = filepath.Join(dir, "distribution.md")
	csvPath = filepath.Join(dir, "distribution.csv")
	if err := writeText(mdPath, DistributionMarkdown(dist)); err != nil {
		return "", "", err
	}
	if err := WriteCSV(csvPath, dist); err != nil {
		return "", "", err
	}
	return mdPath, csvPath, nil
}
