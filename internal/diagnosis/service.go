package diagnosis

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"diagnosd/pkg/types"
)

// Classifier is the single-sample prediction operation of a trained model.
// It returns a class index.
type Classifier interface {
	Predict(x []float64) (int, error)
}

// Config carries the optional collaborators of a Service.
type Config struct {
	// ModelPath is where the artifact was (or would have been) loaded from.
	ModelPath string
	// Publisher receives one Event per Predict call. Defaults to a no-op.
	Publisher EventPublisher
	// Logger is used for load and prediction logs. Defaults to zerolog.Nop.
	Logger *zerolog.Logger
}

// Service answers predictions from one immutable model, or reports
// ModelUnavailable for every call when no model could be loaded.
type Service struct {
	cls    Classifier
	info   *types.ModelInfo
	reason string
	pub    EventPublisher
	log    zerolog.Logger
	start  time.Time

	served      atomic.Uint64
	failed      atomic.Uint64
	unavailable atomic.Uint64
}

func newService(cfg Config) *Service {
	s := &Service{pub: cfg.Publisher, log: zerolog.Nop(), start: time.Now()}
	if s.pub == nil {
		s.pub = noopPublisher{}
	}
	if cfg.Logger != nil {
		s.log = *cfg.Logger
	}
	return s
}

// New wraps a loaded classifier. A nil classifier yields the unavailable
// variant.
func New(cls Classifier, cfg Config) *Service {
	if cls == nil {
		return Unavailable("no classifier configured", cfg)
	}
	s := newService(cfg)
	s.cls = cls
	s.info = &types.ModelInfo{Path: cfg.ModelPath, Features: append([]string(nil), FeatureNames...)}
	return s
}

// Unavailable builds a Service without a model. reason is reported by
// Reason and Status.
func Unavailable(reason string, cfg Config) *Service {
	s := newService(cfg)
	s.reason = reason
	return s
}

// Ready reports whether a model is loaded.
func (s *Service) Ready() bool { return s.cls != nil }

// Reason explains why the model is unavailable; empty when Ready.
func (s *Service) Reason() string { return s.reason }

// Predict classifies v. It never panics: a missing model yields
// KindModelUnavailable and any classifier error or panic yields
// KindPredictionFailure.
func (s *Service) Predict(ctx context.Context, v FeatureVector) Result {
	res := s.predict(ctx, v)
	s.observe(v, res)
	return res
}

func (s *Service) predict(ctx context.Context, v FeatureVector) Result {
	if s.cls == nil {
		return ModelUnavailable()
	}
	if err := ctx.Err(); err != nil {
		return PredictionFailure(err.Error())
	}
	class, err := s.classify(v.Slice())
	if err != nil {
		return PredictionFailure(err.Error())
	}
	return Success(LabelFromClass(class))
}

func (s *Service) classify(x []float64) (class int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return s.cls.Predict(x)
}

// observe updates counters, logs and publishes. Nothing here can alter res.
func (s *Service) observe(v FeatureVector, res Result) {
	switch res.Kind {
	case KindSuccess:
		s.served.Add(1)
	case KindModelUnavailable:
		s.unavailable.Add(1)
	default:
		s.failed.Add(1)
	}

	ev := s.log.Debug().Floats64("features", v.Slice()).Str("kind", res.Kind.String())
	if res.OK() {
		ev = ev.Str("label", res.Label.String())
	} else if res.Message != "" {
		ev = ev.Str("error", res.Message)
	}
	ev.Msg("prediction")

	defer func() { _ = recover() }()
	s.pub.Publish(Event{
		Name:  "prediction",
		Kind:  res.Kind,
		Label: res.Label,
		Fields: map[string]any{
			"features": v.Slice(),
			"message":  res.Message,
		},
	})
}
