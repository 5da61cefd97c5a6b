// Package forest implements a bagged ensemble of CART classification trees
// and its on-disk artifact format.
package forest

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Defaults applied when the corresponding Options fields are unset.
const (
	DefaultNumTrees = 100
	DefaultSeed     = 42
)

// Options encapsulates the tunables for Fit.
type Options struct {
	NumTrees        int
	MaxDepth        int
	MinSamplesSplit int
	// MaxFeatures per split; 0 uses floor(sqrt(features)).
	MaxFeatures int
	Seed        int64
	// Workers bounds parallel tree growth; 0 uses GOMAXPROCS.
	Workers int
}

// Forest is a trained random forest. It is never mutated after Fit or Load
// and is safe for concurrent use.
type Forest struct {
	Version    int       `json:"version"`
	Features   []string  `json:"features"`
	Classes    []string  `json:"classes"`
	NumClasses int       `json:"num_classes"`
	Seed       int64     `json:"seed"`
	TrainedAt  time.Time `json:"trained_at"`
	Trees      []Tree    `json:"trees"`
}

// Fit grows a forest on samples x with class labels y in [0, len(classes)).
// Each tree gets its own RNG derived from opts.Seed and the tree index, so the
// result does not depend on goroutine scheduling.
func Fit(x [][]float64, y []int, features, classes []string, opts Options) (*Forest, error) {
	if len(x) == 0 {
		return nil, errors.New("no training samples")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("samples and labels size mismatch: %d != %d", len(x), len(y))
	}
	if len(features) == 0 {
		return nil, errors.New("no features")
	}
	if len(classes) < 2 {
		return nil, fmt.Errorf("need at least 2 classes, got %d", len(classes))
	}
	for i, row := range x {
		if len(row) != len(features) {
			return nil, fmt.Errorf("sample %d has %d features, expected %d", i, len(row), len(features))
		}
	}
	for i, c := range y {
		if c < 0 || c >= len(classes) {
			return nil, fmt.Errorf("sample %d has class %d outside [0, %d)", i, c, len(classes))
		}
	}

	if opts.NumTrees <= 0 {
		opts.NumTrees = DefaultNumTrees
	}
	if opts.MaxFeatures <= 0 {
		opts.MaxFeatures = int(math.Max(1, math.Floor(math.Sqrt(float64(len(features))))))
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	treeOpts := TreeOptions{
		MaxDepth:        opts.MaxDepth,
		MinSamplesSplit: opts.MinSamplesSplit,
		MaxFeatures:     opts.MaxFeatures,
	}

	f := &Forest{
		Version:    ArtifactVersion,
		Features:   append([]string(nil), features...),
		Classes:    append([]string(nil), classes...),
		NumClasses: len(classes),
		Seed:       opts.Seed,
		TrainedAt:  time.Now().UTC(),
		Trees:      make([]Tree, opts.NumTrees),
	}

	sem := make(chan struct{}, opts.Workers)
	var wg sync.WaitGroup
	for i := 0; i < opts.NumTrees; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			rng := rand.New(rand.NewSource(treeSeed(opts.Seed, i)))
			sample := bootstrap(len(x), rng)
			f.Trees[i] = growTree(x, y, sample, len(classes), treeOpts, rng)
		}(i)
	}
	wg.Wait()
	return f, nil
}

func treeSeed(seed int64, i int) int64 {
	return seed*1_000_003 + int64(i)
}

func bootstrap(n int, rng *rand.Rand) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rng.Intn(n)
	}
	return idx
}

// Votes returns the per-class vote fractions for one sample.
func (f *Forest) Votes(x []float64) ([]float64, error) {
	if len(x) != len(f.Features) {
		return nil, fmt.Errorf("X has %d features, but the model is expecting %d features as input", len(x), len(f.Features))
	}
	if len(f.Trees) == 0 {
		return nil, errors.New("model has no trees")
	}
	votes := make([]float64, f.NumClasses)
	for i := range f.Trees {
		c, err := f.Trees[i].Predict(x)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		if c < 0 || c >= f.NumClasses {
			return nil, fmt.Errorf("tree %d: class %d outside [0, %d)", i, c, f.NumClasses)
		}
		votes[c]++
	}
	floats.Scale(1/float64(len(f.Trees)), votes)
	return votes, nil
}

// Predict returns the majority class index for one sample. Ties go to the
// lowest class index.
func (f *Forest) Predict(x []float64) (int, error) {
	votes, err := f.Votes(x)
	if err != nil {
		return 0, err
	}
	return floats.MaxIdx(votes), nil
}

// PredictBatch classifies every row of x.
func (f *Forest) PredictBatch(x [][]float64) ([]int, error) {
	out := make([]int, len(x))
	for i, row := range x {
		c, err := f.Predict(row)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}
