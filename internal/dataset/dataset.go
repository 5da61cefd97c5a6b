// Package dataset loads the Wisconsin Diagnostic Breast Cancer data from CSV
// and prepares seeded train/test splits.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// Class indices follow the scikit-learn encoding of the dataset target.
const (
	ClassMalignant = 0
	ClassBenign    = 1
)

// ClassNames is indexed by class.
var ClassNames = []string{"malignant", "benign"}

// WDBCColumns names the 30 measurement columns of wdbc.data, in file order
// after the id and diagnosis columns.
var WDBCColumns = []string{
	"mean radius", "mean texture", "mean perimeter", "mean area", "mean smoothness",
	"mean compactness", "mean concavity", "mean concave points", "mean symmetry", "mean fractal dimension",
	"radius error", "texture error", "perimeter error", "area error", "smoothness error",
	"compactness error", "concavity error", "concave points error", "symmetry error", "fractal dimension error",
	"worst radius", "worst texture", "worst perimeter", "worst area", "worst smoothness",
	"worst compactness", "worst concavity", "worst concave points", "worst symmetry", "worst fractal dimension",
}

// DataSet is a row-major sample matrix with class labels.
type DataSet struct {
	Features []string
	X        [][]float64
	Y        []int
}

// Len returns the number of samples.
func (d *DataSet) Len() int { return len(d.Y) }

// LoadCSV reads path and keeps only the named features, in the given order.
func LoadCSV(path string, features []string) (*DataSet, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	ds, err := ReadCSV(fh, features)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// ReadCSV accepts two layouts. The raw UCI wdbc.data file has no header and
// starts each row with an id and an M/B diagnosis. Any other file must have a
// header naming the feature columns plus a "target" (0/1) or "diagnosis"
// (M/B) column.
func ReadCSV(r io.Reader, features []string) (*DataSet, error) {
	if len(features) == 0 {
		return nil, errors.New("no features selected")
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	first, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var (
		cols      []int
		targetCol int
		rows      [][]string
	)
	if isWDBCRow(first) {
		byName := indexOf(WDBCColumns)
		for _, f := range features {
			i, ok := byName[f]
			if !ok {
				return nil, fmt.Errorf("unknown feature %q", f)
			}
			cols = append(cols, i+2)
		}
		targetCol = 1
		rows = append(rows, first)
	} else {
		byName := indexOf(first)
		for _, f := range features {
			i, ok := byName[f]
			if !ok {
				return nil, fmt.Errorf("column %q not found", f)
			}
			cols = append(cols, i)
		}
		var ok bool
		if targetCol, ok = byName["target"]; !ok {
			if targetCol, ok = byName["diagnosis"]; !ok {
				return nil, errors.New(`no "target" or "diagnosis" column`)
			}
		}
	}

	rest, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	rows = append(rows, rest...)

	ds := &DataSet{Features: append([]string(nil), features...)}
	for n, rec := range rows {
		line := n + 1
		if targetCol >= len(rec) {
			return nil, fmt.Errorf("row %d: missing target column", line)
		}
		label, err := parseLabel(rec[targetCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		sample := make([]float64, len(cols))
		for j, c := range cols {
			if c >= len(rec) {
				return nil, fmt.Errorf("row %d: missing column for %q", line, features[j])
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[c]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %q: %w", line, features[j], err)
			}
			sample[j] = v
		}
		ds.X = append(ds.X, sample)
		ds.Y = append(ds.Y, label)
	}
	if ds.Len() == 0 {
		return nil, errors.New("no data rows")
	}
	return ds, nil
}

func isWDBCRow(rec []string) bool {
	if len(rec) != len(WDBCColumns)+2 {
		return false
	}
	if _, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64); err != nil {
		return false
	}
	d := strings.TrimSpace(rec[1])
	return d == "M" || d == "B"
}

func indexOf(names []string) map[string]int {
	m := make(map[string]int, len(names))
	for i, n := range names {
		m[strings.TrimSpace(n)] = i
	}
	return m
}

func parseLabel(s string) (int, error) {
	switch v := strings.TrimSpace(s); v {
	case "M", "0":
		return ClassMalignant, nil
	case "B", "1":
		return ClassBenign, nil
	default:
		return 0, fmt.Errorf("unknown label %q", v)
	}
}

// Split shuffles sample indices with a seeded RNG and moves the first
// ceil(n*testFraction) of them into the test set.
func (d *DataSet) Split(testFraction float64, seed int64) (train, test *DataSet, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction %.3f outside (0, 1)", testFraction)
	}
	n := d.Len()
	nTest := int(math.Ceil(float64(n) * testFraction))
	if nTest >= n {
		return nil, nil, fmt.Errorf("%d samples too few for a %.0f%% test split", n, testFraction*100)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	test = d.subset(perm[:nTest])
	train = d.subset(perm[nTest:])
	return train, test, nil
}

func (d *DataSet) subset(idx []int) *DataSet {
	out := &DataSet{
		Features: d.Features,
		X:        make([][]float64, len(idx)),
		Y:        make([]int, len(idx)),
	}
	for i, j := range idx {
		out.X[i] = d.X[j]
		out.Y[i] = d.Y[j]
	}
	return out
}
