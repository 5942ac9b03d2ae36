package sample

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/forest-guardian/landcover-samples/internal/log"
	"github.com/gocarina/gocsv"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Values are the band values of one sample, stored as a single
// semicolon-separated CSV cell.
type Values []float64

func (v Values) MarshalCSV() (string, error) {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(parts, ";"), nil
}

func (v *Values) UnmarshalCSV(s string) error {
	*v = (*v)[:0]
	if s == "" {
		return nil
	}
	for _, p := range strings.Split(s, ";") {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return err
		}
		*v = append(*v, f)
	}
	return nil
}

type Row struct {
	Row    int    `csv:"row"`
	Col    int    `csv:"col"`
	Label  int32  `csv:"label"`
	Values Values `csv:"values"`
}

// Rows flattens a result into one Row per sample.
func (r *Result) Rows() []Row {
	rows := make([]Row, r.Len())
	for i := range rows {
		rows[i] = Row{
			Row:    r.Coords.Rows[i],
			Col:    r.Coords.Cols[i],
			Label:  r.Y[i],
			Values: append(Values(nil), r.X.Row(i)...),
		}
	}
	return rows
}

func WriteCSV(res *Result, path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create samples file: %w", err)
	}
	defer func() { err = multierr.Append(err, file.Close()) }()

	rows := res.Rows()
	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to save samples to file: %w", err)
	}
	log.Info(logTag+"samples saved", zap.String("path", path), zap.Int("rows", len(rows)))
	return nil
}

// ReadCSV loads a file written by WriteCSV back into a flat result.
func ReadCSV(path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open samples file: %w", err)
	}
	defer file.Close()

	var rows []Row
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("failed to read samples file: %w", err)
	}
	res := &Result{X: &Matrix{Rows: len(rows)}}
	for i, row := range rows {
		if i == 0 {
			res.X.Cols = len(row.Values)
		} else if len(row.Values) != res.X.Cols {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(row.Values), res.X.Cols)
		}
		res.X.Data = append(res.X.Data, row.Values...)
		res.Y = append(res.Y, row.Label)
		res.Coords.Rows = append(res.Coords.Rows, row.Row)
		res.Coords.Cols = append(res.Coords.Cols, row.Col)
	}
	return res, nil
}
