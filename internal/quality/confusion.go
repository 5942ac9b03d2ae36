package quality

import (
	"errors"
	"fmt"
	"slices"

	"github.com/forest-guardian/landcover-samples/internal/curation"
)

var ErrLength = errors.New("truth and prediction differ in length")

// ConfusionMatrix counts reference labels in rows and predicted labels in
// columns. Labels is the sorted union of both label sets.
type ConfusionMatrix struct {
	Labels []int32
	Counts [][]int
}

func NewConfusionMatrix(truth, pred []int32) (*ConfusionMatrix, error) {
	if len(truth) != len(pred) {
		return nil, fmt.Errorf("%d truth, %d predictions: %w", len(truth), len(pred), ErrLength)
	}
	labels := slices.Concat(truth, pred)
	slices.Sort(labels)
	labels = slices.Compact(labels)

	index := make(map[int32]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	counts := make([][]int, len(labels))
	for i := range counts {
		counts[i] = make([]int, len(labels))
	}
	for i := range truth {
		counts[index[truth[i]]][index[pred[i]]]++
	}
	return &ConfusionMatrix{Labels: labels, Counts: counts}, nil
}

func (cm *ConfusionMatrix) Total() int {
	total := 0
	for _, row := range cm.Counts {
		for _, c := range row {
			total += c
		}
	}
	return total
}

func (cm *ConfusionMatrix) rowSum(i int) int {
	s := 0
	for _, c := range cm.Counts[i] {
		s += c
	}
	return s
}

func (cm *ConfusionMatrix) colSum(j int) int {
	s := 0
	for _, row := range cm.Counts {
		s += row[j]
	}
	return s
}

// Accuracy is the share of the diagonal, in [0, 1].
func (cm *ConfusionMatrix) Accuracy() float64 {
	total := cm.Total()
	if total == 0 {
		return 0
	}
	diag := 0
	for i := range cm.Counts {
		diag += cm.Counts[i][i]
	}
	return float64(diag) / float64(total)
}

// Kappa is Cohen's kappa coefficient.
func (cm *ConfusionMatrix) Kappa() float64 {
	total := float64(cm.Total())
	if total == 0 {
		return 0
	}
	po := cm.Accuracy()
	pe := 0.0
	for i := range cm.Counts {
		pe += float64(cm.rowSum(i)) * float64(cm.colSum(i)) / (total * total)
	}
	if pe == 1 {
		return 1
	}
	return (po - pe) / (1 - pe)
}

type ClassMetrics struct {
	Label     int32   `csv:"label"`
	Name      string  `csv:"name"`
	Precision float64 `csv:"precision"`
	Recall    float64 `csv:"recall"`
	F1        float64 `csv:"f1"`
	Support   int     `csv:"support"`
}

// Classes returns per-label precision, recall and F1 in percent. A ratio
// with an empty denominator is 0.
func (cm *ConfusionMatrix) Classes() []ClassMetrics {
	out := make([]ClassMetrics, len(cm.Labels))
	for i, l := range cm.Labels {
		m := ClassMetrics{Label: l, Name: curation.ClassName(l), Support: cm.rowSum(i)}
		tp := float64(cm.Counts[i][i])
		if cs := cm.colSum(i); cs > 0 {
			m.Precision = tp / float64(cs) * 100
		}
		if m.Support > 0 {
			m.Recall = tp / float64(m.Support) * 100
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		out[i] = m
	}
	return out
}

// Normalized returns each row as percentages of its sum.
func (cm *ConfusionMatrix) Normalized() [][]float64 {
	out := make([][]float64, len(cm.Counts))
	for i, row := range cm.Counts {
		out[i] = make([]float64, len(row))
		s := cm.rowSum(i)
		if s == 0 {
			continue
		}
		for j, c := range row {
			out[i][j] = float64(c) / float64(s) * 100
		}
	}
	return out
}
