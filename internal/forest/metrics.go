package forest

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ClassReport holds per-class precision/recall/F1 and the number of true samples.
type ClassReport struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Accuracy is the fraction of predictions equal to the truth.
func Accuracy(pred, truth []int) (float64, error) {
	if len(pred) != len(truth) {
		return 0, fmt.Errorf("prediction and truth lengths differ: %d != %d", len(pred), len(truth))
	}
	if len(pred) == 0 {
		return 0, fmt.Errorf("no predictions")
	}
	hits := make([]float64, len(pred))
	for i := range pred {
		if pred[i] == truth[i] {
			hits[i] = 1
		}
	}
	return stat.Mean(hits, nil), nil
}

// PerClass computes one-vs-rest precision, recall and F1 for each class.
// Undefined ratios (no predicted or no true samples) are reported as 0.
func PerClass(pred, truth []int, numClasses int) ([]ClassReport, error) {
	if len(pred) != len(truth) {
		return nil, fmt.Errorf("prediction and truth lengths differ: %d != %d", len(pred), len(truth))
	}
	out := make([]ClassReport, numClasses)
	for c := 0; c < numClasses; c++ {
		var tp, fp, fn int
		for i := range pred {
			switch {
			case truth[i] == c && pred[i] == c:
				tp++
			case truth[i] != c && pred[i] == c:
				fp++
			case truth[i] == c && pred[i] != c:
				fn++
			}
		}
		r := ClassReport{Support: tp + fn}
		if tp+fp > 0 {
			r.Precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			r.Recall = float64(tp) / float64(tp+fn)
		}
		if r.Precision+r.Recall > 0 {
			r.F1 = 2 * r.Precision * r.Recall / (r.Precision + r.Recall)
		}
		out[c] = r
	}
	return out, nil
}
