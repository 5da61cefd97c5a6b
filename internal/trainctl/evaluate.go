package trainctl

import (
	"fmt"
	"io"

	"diagnosd/internal/dataset"
	"diagnosd/internal/diagnosis"
)

// Evaluate scores a saved model against every row of a dataset.
func Evaluate(modelPath, dataPath string, out io.Writer) (*Report, error) {
	f, _, err := diagnosis.LoadForest(modelPath)
	if err != nil {
		return nil, err
	}
	ds, err := dataset.LoadCSV(dataPath, f.Features)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	s, err := score(f, ds)
	if err != nil {
		return nil, err
	}
	rep := &Report{Test: s}
	rep.Print(out)
	return rep, nil
}
