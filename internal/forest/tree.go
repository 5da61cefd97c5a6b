package forest

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Node is one entry of a flattened decision tree. Children are indices into
// the owning Tree's Nodes slice; index 0 is the root.
type Node struct {
	Feature   int     `json:"f,omitempty"`
	Threshold float64 `json:"t,omitempty"`
	Left      int     `json:"l,omitempty"`
	Right     int     `json:"r,omitempty"`
	Leaf      bool    `json:"leaf,omitempty"`
	Class     int     `json:"c,omitempty"`
}

// Tree is a binary CART classifier stored as a flat node array.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Predict walks the tree for a single sample.
func (t *Tree) Predict(x []float64) (int, error) {
	if len(t.Nodes) == 0 {
		return 0, fmt.Errorf("empty tree")
	}
	idx := 0
	for {
		n := t.Nodes[idx]
		if n.Leaf {
			return n.Class, nil
		}
		if n.Feature < 0 || n.Feature >= len(x) {
			return 0, fmt.Errorf("feature index %d out of range for %d inputs", n.Feature, len(x))
		}
		if x[n.Feature] <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
		if idx <= 0 || idx >= len(t.Nodes) {
			return 0, fmt.Errorf("invalid tree state at node %d", idx)
		}
	}
}

// TreeOptions controls the growth of a single tree.
type TreeOptions struct {
	// MaxDepth limits tree height; 0 grows until leaves are pure.
	MaxDepth int
	// MinSamplesSplit is the smallest node that may still be split.
	MinSamplesSplit int
	// MaxFeatures is the number of candidate features drawn per split; 0 means all.
	MaxFeatures int
}

const defaultMinSamplesSplit = 2

type treeBuilder struct {
	x          [][]float64
	y          []int
	numClasses int
	opts       TreeOptions
	rng        *rand.Rand
	nodes      []Node
}

// growTree fits one tree on the samples listed in idx. Duplicate indices are
// allowed, which is how bootstrap samples are expressed.
func growTree(x [][]float64, y []int, idx []int, numClasses int, opts TreeOptions, rng *rand.Rand) Tree {
	if opts.MinSamplesSplit < defaultMinSamplesSplit {
		opts.MinSamplesSplit = defaultMinSamplesSplit
	}
	b := &treeBuilder{x: x, y: y, numClasses: numClasses, opts: opts, rng: rng}
	b.build(idx, 0)
	return Tree{Nodes: b.nodes}
}

func (b *treeBuilder) build(idx []int, depth int) int {
	counts := b.classCounts(idx)
	self := len(b.nodes)
	b.nodes = append(b.nodes, Node{Leaf: true, Class: floats.MaxIdx(counts)})

	if len(idx) < b.opts.MinSamplesSplit || isPure(counts) {
		return self
	}
	if b.opts.MaxDepth > 0 && depth >= b.opts.MaxDepth {
		return self
	}

	feature, threshold, ok := b.bestSplit(idx, counts)
	if !ok {
		return self
	}
	left, right := partition(b.x, idx, feature, threshold)

	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.nodes[self] = Node{Feature: feature, Threshold: threshold, Left: l, Right: r}
	return self
}

func (b *treeBuilder) classCounts(idx []int) []float64 {
	counts := make([]float64, b.numClasses)
	for _, i := range idx {
		counts[b.y[i]]++
	}
	return counts
}

// bestSplit scans a random subset of features for the threshold with the
// lowest weighted Gini impurity. ok is false when no split reduces impurity.
func (b *treeBuilder) bestSplit(idx []int, parent []float64) (feature int, threshold float64, ok bool) {
	numFeatures := len(b.x[idx[0]])
	candidates := b.rng.Perm(numFeatures)
	if k := b.opts.MaxFeatures; k > 0 && k < numFeatures {
		candidates = candidates[:k]
	}

	n := float64(len(idx))
	bestScore := gini(parent)
	sorted := make([]int, len(idx))
	left := make([]float64, b.numClasses)
	right := make([]float64, b.numClasses)

	for _, f := range candidates {
		copy(sorted, idx)
		sort.Slice(sorted, func(i, j int) bool { return b.x[sorted[i]][f] < b.x[sorted[j]][f] })

		for c := range left {
			left[c] = 0
		}
		copy(right, parent)

		for pos := 0; pos < len(sorted)-1; pos++ {
			cls := b.y[sorted[pos]]
			left[cls]++
			right[cls]--

			cur, next := b.x[sorted[pos]][f], b.x[sorted[pos+1]][f]
			if cur == next {
				continue
			}
			nl := float64(pos + 1)
			score := (nl*gini(left) + (n-nl)*gini(right)) / n
			if score < bestScore {
				bestScore = score
				feature = f
				threshold = cur + (next-cur)/2
				if threshold >= next {
					threshold = cur
				}
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func partition(x [][]float64, idx []int, feature int, threshold float64) (left, right []int) {
	for _, i := range idx {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return left, right
}

func gini(counts []float64) float64 {
	total := floats.Sum(counts)
	if total == 0 {
		return 0
	}
	sumSq := 0.0
	for _, c := range counts {
		p := c / total
		sumSq += p * p
	}
	return 1 - sumSq
}

func isPure(counts []float64) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}
