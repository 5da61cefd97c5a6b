package diagnosis

import (
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"diagnosd/internal/forest"
)

type constClassifier struct{ class int }

func (c constClassifier) Predict(x []float64) (int, error) { return c.class, nil }

type errClassifier struct{ msg string }

func (e errClassifier) Predict(x []float64) (int, error) { return 0, errors.New(e.msg) }

type panicClassifier struct{}

func (panicClassifier) Predict(x []float64) (int, error) { panic("index out of range [6] with length 6") }

type panicPublisher struct{}

func (panicPublisher) Publish(Event) { panic("publisher down") }

// trainForest fits a small forest where large tumors are malignant (class 0).
func trainForest(t *testing.T, features []string) *forest.Forest {
	t.Helper()
	rng := rand.New(rand.NewSource(11))
	var x [][]float64
	var y []int
	for i := 0; i < 120; i++ {
		malignant := i%2 == 0
		radius := 10 + rng.Float64()*3
		if malignant {
			radius = 18 + rng.Float64()*4
		}
		row := []float64{radius, 15 + rng.Float64()*10, radius * 6.3, radius * radius * 3.1, 0.08 + rng.Float64()*0.04, 0.05 + rng.Float64()*0.1}
		x = append(x, row[:len(features)])
		if malignant {
			y = append(y, 0)
		} else {
			y = append(y, 1)
		}
	}
	f, err := forest.Fit(x, y, features, []string{"malignant", "benign"}, forest.Options{NumTrees: 10, Seed: 42})
	if err != nil { t.Fatalf("fit: %v", err) }
	return f
}

func saveForest(t *testing.T, f *forest.Forest) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cancermodel.json")
	if err := f.Save(p); err != nil { t.Fatalf("save: %v", err) }
	return p
}
