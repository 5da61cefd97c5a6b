package httpapi

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"diagnosd/internal/diagnosis"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch s {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// global default, read once
var defaultLogLevel = parseLevel(os.Getenv("DIAGNOSD_LOG_LEVEL"))

// SetDefaultLogLevel overrides the request log level used when a request
// carries no override.
func SetDefaultLogLevel(s string) { defaultLogLevel = parseLevel(s) }

func requestLogLevel(r *http.Request) LogLevel {
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			return LevelDebug
		}
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

// logPrediction records one predict call. Failures are logged at error level,
// everything else at info; the features are included at debug.
func logPrediction(r *http.Request, lvl LogLevel, v diagnosis.FeatureVector, res diagnosis.Result, dur time.Duration) {
	failed := res.Kind != diagnosis.KindSuccess
	if lvl < LevelInfo && !(failed && lvl >= LevelError) {
		return
	}
	rid := middleware.GetReqID(r.Context())
	if zlog == nil {
		log.Printf("predict path=%s kind=%s text=%q dur=%s request_id=%s", r.URL.Path, res.Kind, res.Text(), dur, rid)
		return
	}
	z := zlog.Info()
	if failed {
		z = zlog.Error()
	}
	z = z.Str("path", r.URL.Path).Str("kind", res.Kind.String()).Dur("dur", dur)
	if rid != "" {
		z = z.Str("request_id", rid)
	}
	if res.OK() {
		z = z.Str("label", res.Label.String())
	} else if res.Message != "" {
		z = z.Str("error", res.Message)
	}
	if lvl >= LevelDebug {
		z = z.Floats64("features", v.Slice())
	}
	z.Msg("predict")
}
