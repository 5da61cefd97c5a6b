package trainctl

import (
	"fmt"
	"io"

	"diagnosd/internal/dataset"
	"diagnosd/internal/forest"
)

// Score summarizes a forest's performance on one dataset.
type Score struct {
	Samples  int
	Accuracy float64
	Classes  []forest.ClassReport
}

// Report is the outcome of a training run. Train is empty for evaluate.
type Report struct {
	Train Score
	Test  Score
}

func score(f *forest.Forest, ds *dataset.DataSet) (Score, error) {
	pred, err := f.PredictBatch(ds.X)
	if err != nil {
		return Score{}, err
	}
	acc, err := forest.Accuracy(pred, ds.Y)
	if err != nil {
		return Score{}, err
	}
	per, err := forest.PerClass(pred, ds.Y, f.NumClasses)
	if err != nil {
		return Score{}, err
	}
	return Score{Samples: ds.Len(), Accuracy: acc, Classes: per}, nil
}

// Print writes a human readable summary.
func (r *Report) Print(w io.Writer) {
	if r.Train.Samples > 0 {
		fmt.Fprintf(w, "Train accuracy: %.4f (%d samples)\n", r.Train.Accuracy, r.Train.Samples)
	}
	fmt.Fprintf(w, "Test accuracy: %.4f (%d samples)\n", r.Test.Accuracy, r.Test.Samples)
	for c, cr := range r.Test.Classes {
		name := fmt.Sprint(c)
		if c < len(dataset.ClassNames) {
			name = dataset.ClassNames[c]
		}
		fmt.Fprintf(w, "  %-10s precision=%.3f recall=%.3f f1=%.3f support=%d\n", name, cr.Precision, cr.Recall, cr.F1, cr.Support)
	}
}
