package trainctl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"diagnosd/internal/dataset"
	"diagnosd/internal/diagnosis"
	"diagnosd/internal/forest"
)

// TrainOptions configures one training run.
type TrainOptions struct {
	DataPath     string
	// DataURL is downloaded to DataPath when that file is missing. Empty
	// disables the download.
	DataURL      string
	ModelOut     string
	FeaturesOut  string
	TestFraction float64
	Seed         int64
	Trees        int
	MaxDepth     int
	Workers      int
}

// DefaultTrainOptions mirrors the reference training setup: 80/20 split,
// 100 trees, seed 42.
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		DataPath:     "wdbc.data",
		DataURL:      dataset.WDBCURL,
		ModelOut:     "cancermodel.json",
		FeaturesOut:  "features.json",
		TestFraction: 0.2,
		Seed:         forest.DefaultSeed,
		Trees:        forest.DefaultNumTrees,
	}
}

// Train loads the dataset (downloading it first if needed), splits it, fits
// the forest, reports accuracy and writes the artifacts.
func Train(ctx context.Context, opts TrainOptions, log zerolog.Logger, out io.Writer) (*Report, error) {
	if opts.DataURL != "" {
		fetched, err := dataset.Ensure(ctx, nil, opts.DataPath, opts.DataURL)
		if err != nil {
			return nil, fmt.Errorf("fetch dataset: %w", err)
		}
		if fetched {
			log.Info().Str("url", opts.DataURL).Str("path", opts.DataPath).Msg("dataset downloaded")
		}
	}
	ds, err := dataset.LoadCSV(opts.DataPath, diagnosis.FeatureNames)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	log.Info().Str("path", opts.DataPath).Int("samples", ds.Len()).Msg("dataset loaded")

	train, test, err := ds.Split(opts.TestFraction, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	log.Info().Int("train", train.Len()).Int("test", test.Len()).Int64("seed", opts.Seed).Msg("split")

	f, err := forest.Fit(train.X, train.Y, diagnosis.FeatureNames, dataset.ClassNames, forest.Options{
		NumTrees: opts.Trees,
		MaxDepth: opts.MaxDepth,
		Seed:     opts.Seed,
		Workers:  opts.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}
	log.Info().Int("trees", len(f.Trees)).Msg("forest trained")

	rep := &Report{}
	if rep.Train, err = score(f, train); err != nil {
		return nil, err
	}
	if rep.Test, err = score(f, test); err != nil {
		return nil, err
	}
	rep.Print(out)

	if err := f.Save(opts.ModelOut); err != nil {
		return nil, fmt.Errorf("save model: %w", err)
	}
	if opts.FeaturesOut != "" {
		if err := writeFeatures(opts.FeaturesOut, f.Features); err != nil {
			return nil, fmt.Errorf("save features: %w", err)
		}
	}
	log.Info().Str("model", opts.ModelOut).Str("features", opts.FeaturesOut).Msg("artifacts written")
	fmt.Fprintf(out, "Success: model trained and saved as %q\n", opts.ModelOut)
	return rep, nil
}

func writeFeatures(path string, features []string) error {
	b, err := json.MarshalIndent(features, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
