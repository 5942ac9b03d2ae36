package quality

import (
	"time"

	"github.com/forest-guardian/landcover-samples/internal/log"
	"github.com/forest-guardian/landcover-samples/internal/sample"
	"go.uber.org/zap"
)

const logTag = "quality:"

type Evaluation struct {
	Truth      string
	Prediction string
	StartTime  time.Time
	EndTime    time.Time
	Matrix     *ConfusionMatrix
	Classes    []ClassMetrics
	Accuracy   float64
	Kappa      float64
}

// Evaluate compares two label vectors.
func Evaluate(truth, pred []int32) (*Evaluation, error) {
	start := time.Now()
	cm, err := NewConfusionMatrix(truth, pred)
	if err != nil {
		return nil, err
	}
	return &Evaluation{
		StartTime: start,
		EndTime:   time.Now(),
		Matrix:    cm,
		Classes:   cm.Classes(),
		Accuracy:  cm.Accuracy(),
		Kappa:     cm.Kappa(),
	}, nil
}

// EvaluateRasters compares a prediction raster with a label raster on every
// labelled pixel. Only the first band of the prediction is read.
func EvaluateRasters(truthPath, predPath string, progress bool) (*Evaluation, error) {
	start := time.Now()
	res, err := sample.ExtractFiles(predPath, truthPath, sample.Options{Bands: []int{0}, Progress: progress})
	if err != nil {
		return nil, err
	}
	pred := make([]int32, res.Len())
	for i := range pred {
		pred[i] = int32(res.X.At(i, 0))
	}
	ev, err := Evaluate(res.Y, pred)
	if err != nil {
		return nil, err
	}
	ev.Truth, ev.Prediction = truthPath, predPath
	ev.StartTime = start
	log.Info(logTag+"prediction evaluated",
		zap.String("truth", truthPath),
		zap.String("prediction", predPath),
		zap.Int("samples", res.Len()),
		zap.Float64("accuracy", ev.Accuracy),
		zap.Float64("kappa", ev.Kappa))
	return ev, nil
}
