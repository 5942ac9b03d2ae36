package sample

import (
	"cmp"
	"slices"
)

// groupByLabel partitions the rows of res per label, keeping their relative
// order.
func groupByLabel(res *Result) map[int32]*Group {
	counts := res.Counts()
	groups := make(map[int32]*Group, len(counts))
	for label, n := range counts {
		groups[label] = &Group{
			Label: label,
			X:     &Matrix{Cols: res.X.Cols, Data: make([]float64, 0, n*res.X.Cols)},
			Coords: Coords{
				Rows: make([]int, 0, n),
				Cols: make([]int, 0, n),
			},
		}
	}
	for i, y := range res.Y {
		g := groups[y]
		g.X.Data = append(g.X.Data, res.X.Row(i)...)
		g.X.Rows++
		g.Coords.Rows = append(g.Coords.Rows, res.Coords.Rows[i])
		g.Coords.Cols = append(g.Coords.Cols, res.Coords.Cols[i])
	}
	return groups
}

// Flatten merges groups back into sample order, sorting rows by their grid
// position.
func Flatten(groups map[int32]*Group, width int) *Result {
	type entry struct {
		key   int
		label int32
		row   []float64
		r, c  int
	}
	var (
		entries []entry
		cols    int
	)
	for label, g := range groups {
		cols = g.X.Cols
		for i := 0; i < g.X.Rows; i++ {
			r, c := g.Coords.Rows[i], g.Coords.Cols[i]
			entries = append(entries, entry{key: r*width + c, label: label, row: g.X.Row(i), r: r, c: c})
		}
	}
	slices.SortFunc(entries, func(a, b entry) int { return cmp.Compare(a.key, b.key) })

	res := &Result{X: &Matrix{Rows: len(entries), Cols: cols}}
	for _, e := range entries {
		res.X.Data = append(res.X.Data, e.row...)
		res.Y = append(res.Y, e.label)
		res.Coords.Rows = append(res.Coords.Rows, e.r)
		res.Coords.Cols = append(res.Coords.Cols, e.c)
	}
	return res
}
