package httpapi

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"diagnosd/internal/diagnosis"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":      LevelOff,
		"off":   LevelOff,
		"error": LevelError,
		"info":  LevelInfo,
		"debug": LevelDebug,
		"weird": LevelInfo, // default
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestLogLevel_Overrides(t *testing.T) {
	r := httptest.NewRequest("GET", "/x?log=debug", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("query override failed: %v", got)
	}
	r = httptest.NewRequest("GET", "/x?log=1", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("query shorthand failed: %v", got)
	}
	r = httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("X-Log-Level", "error")
	if got := requestLogLevel(r); got != LevelError {
		t.Fatalf("header override failed: %v", got)
	}
	SetDefaultLogLevel("info")
	t.Cleanup(func() { SetDefaultLogLevel("") })
	if got := requestLogLevel(httptest.NewRequest("GET", "/x", nil)); got != LevelInfo {
		t.Fatalf("default failed: %v", got)
	}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { zlog = nil })
	return &buf
}

func TestLogPrediction_DebugIncludesFeatures(t *testing.T) {
	buf := captureLogs(t)
	r := httptest.NewRequest("POST", "/predict", nil)
	v := diagnosis.FeatureVector{MeanRadius: 14}
	logPrediction(r, LevelDebug, v, diagnosis.Success(diagnosis.Benign), time.Millisecond)
	out := buf.String()
	for _, want := range []string{`"label":"benign"`, `"features":[14,`, `"message":"predict"`} {
		if !strings.Contains(out, want) { t.Fatalf("log %q missing %s", out, want) }
	}
}

func TestLogPrediction_ErrorLevelOnlyLogsFailures(t *testing.T) {
	buf := captureLogs(t)
	r := httptest.NewRequest("POST", "/predict", nil)
	logPrediction(r, LevelError, diagnosis.FeatureVector{}, diagnosis.Success(diagnosis.Malignant), time.Millisecond)
	if buf.Len() != 0 { t.Fatalf("success logged at error level: %s", buf.String()) }
	logPrediction(r, LevelError, diagnosis.FeatureVector{}, diagnosis.PredictionFailure("bad shape"), time.Millisecond)
	if !strings.Contains(buf.String(), `"error":"bad shape"`) { t.Fatalf("failure not logged: %s", buf.String()) }
	buf.Reset()
	logPrediction(r, LevelOff, diagnosis.FeatureVector{}, diagnosis.PredictionFailure("x"), time.Millisecond)
	if buf.Len() != 0 { t.Fatalf("logged with level off: %s", buf.String()) }
}
