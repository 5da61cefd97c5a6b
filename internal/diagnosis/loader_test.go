package diagnosis

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Success(t *testing.T) {
	p := saveForest(t, trainForest(t, FeatureNames))
	s := Load(Config{ModelPath: p})
	if !s.Ready() { t.Fatalf("not ready: %s", s.Reason()) }
	st := s.Status()
	if st.Model.Trees != 10 || len(st.Model.Classes) != 2 || st.Model.TrainedAtUnix == 0 { t.Fatalf("model=%+v", st.Model) }
}

func TestLoad_MissingFileDegrades(t *testing.T) {
	s := Load(Config{ModelPath: filepath.Join(t.TempDir(), "nope.json")})
	if s.Ready() { t.Fatalf("expected unavailable") }
	if !strings.Contains(s.Reason(), "not found") { t.Fatalf("reason=%q", s.Reason()) }
	_, _, err := LoadForest(filepath.Join(t.TempDir(), "nope.json"))
	if !IsModelNotFound(err) { t.Fatalf("expected not found, got %v", err) }
	if _, _, err := LoadForest(""); !IsModelNotFound(err) { t.Fatalf("expected not found for empty path, got %v", err) }
}

func TestLoad_CorruptArtifact(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(p, []byte("{not json"), 0o644); err != nil { t.Fatalf("write: %v", err) }
	_, _, err := LoadForest(p)
	if !IsInvalidArtifact(err) || IsModelNotFound(err) { t.Fatalf("err=%v", err) }
	if Load(Config{ModelPath: p}).Ready() { t.Fatalf("expected unavailable") }
}

func TestLoad_FeatureMismatch(t *testing.T) {
	p := saveForest(t, trainForest(t, FeatureNames[:5]))
	_, _, err := LoadForest(p)
	if !IsInvalidArtifact(err) || !strings.Contains(err.Error(), "do not match") { t.Fatalf("err=%v", err) }
}

func TestLoad_Directory(t *testing.T) {
	if _, _, err := LoadForest(t.TempDir()); !IsModelNotFound(err) { t.Fatalf("err=%v", err) }
}
