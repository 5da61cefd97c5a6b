package forest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ArtifactVersion is written into every saved forest; Read rejects others.
const ArtifactVersion = 1

// Write encodes the forest as JSON.
func (f *Forest) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	return enc.Encode(f)
}

// Save writes the forest to path, replacing any existing file atomically.
func (f *Forest) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".forest-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Read decodes and validates a forest.
func Read(r io.Reader) (*Forest, error) {
	var f Forest
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads a forest from path.
func Load(path string) (*Forest, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Read(fh)
}

// Validate checks the structural invariants Predict relies on.
func (f *Forest) Validate() error {
	if f.Version != ArtifactVersion {
		return fmt.Errorf("unsupported artifact version %d", f.Version)
	}
	if len(f.Features) == 0 {
		return fmt.Errorf("artifact has no features")
	}
	if f.NumClasses < 2 {
		return fmt.Errorf("artifact has %d classes", f.NumClasses)
	}
	if len(f.Classes) != f.NumClasses {
		return fmt.Errorf("artifact declares %d classes but names %d", f.NumClasses, len(f.Classes))
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("artifact has no trees")
	}
	for ti, t := range f.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", ti)
		}
		for ni, n := range t.Nodes {
			if n.Leaf {
				if n.Class < 0 || n.Class >= f.NumClasses {
					return fmt.Errorf("tree %d node %d: class %d out of range", ti, ni, n.Class)
				}
				continue
			}
			if n.Feature < 0 || n.Feature >= len(f.Features) {
				return fmt.Errorf("tree %d node %d: feature %d out of range", ti, ni, n.Feature)
			}
			if n.Left <= ni || n.Left >= len(t.Nodes) || n.Right <= ni || n.Right >= len(t.Nodes) {
				return fmt.Errorf("tree %d node %d: child index out of range", ti, ni)
			}
		}
	}
	return nil
}
