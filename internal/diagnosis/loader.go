package diagnosis

import (
	"fmt"
	"strings"

	"diagnosd/internal/common/fsutil"
	"diagnosd/internal/forest"
)

// Load reads the artifact at cfg.ModelPath and returns a ready Service. Any
// failure (missing file, decode error, feature mismatch) is logged and yields
// the unavailable variant instead, so the process can keep serving pages.
func Load(cfg Config) *Service {
	f, path, err := LoadForest(cfg.ModelPath)
	if err != nil {
		s := Unavailable(err.Error(), cfg)
		s.log.Error().Err(err).Str("path", cfg.ModelPath).Msg("model unavailable")
		return s
	}
	cfg.ModelPath = path
	s := New(f, cfg)
	s.info.Classes = append([]string(nil), f.Classes...)
	s.info.Trees = len(f.Trees)
	if !f.TrainedAt.IsZero() {
		s.info.TrainedAtUnix = f.TrainedAt.Unix()
	}
	s.log.Info().Str("path", path).Int("trees", len(f.Trees)).Strs("features", f.Features).Msg("model loaded")
	return s
}

// LoadForest resolves path and reads a forest whose inputs match
// FeatureNames. It returns the resolved absolute path alongside the model.
func LoadForest(path string) (*forest.Forest, string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, path, ErrModelNotFound("(unspecified)")
	}
	abs, err := fsutil.ResolvePath(path)
	if err != nil {
		return nil, path, artifactError{path: path, err: err}
	}
	if !fsutil.IsRegularFile(abs) {
		return nil, abs, ErrModelNotFound(abs)
	}
	f, err := forest.Load(abs)
	if err != nil {
		return nil, abs, artifactError{path: abs, err: err}
	}
	if !sameFeatures(f.Features, FeatureNames) {
		return nil, abs, artifactError{path: abs, err: fmt.Errorf("model features %q do not match %q", f.Features, FeatureNames)}
	}
	return f, abs, nil
}

func sameFeatures(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
