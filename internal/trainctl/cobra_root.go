// Package trainctl implements the offline tooling around the diagnosis
// model: training, evaluation and one-off predictions.
package trainctl

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"diagnosd/internal/diagnosis"
)

// Config holds the persistent flags shared by every subcommand.
type Config struct {
	LogLvl string
}

// Stubbable entry points for tests.
var (
	fnTrain    = Train
	fnEvaluate = Evaluate
	fnPredict  = Predict
)

func buildRootCmdWith(cfg *Config, stdout, stderr io.Writer) *cobra.Command {
	var log zerolog.Logger
	root := &cobra.Command{
		Use:           "trainctl",
		Short:         "Train, evaluate and query the breast cancer diagnosis model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&cfg.LogLvl, "log-level", cfg.LogLvl, "Log level: debug|info|warn|error (defaults TRAINCTL_LOG_LEVEL or info)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		log = newLogger(stderr, cfg.LogLvl)
	}

	opts := DefaultTrainOptions()
	trainCmd := &cobra.Command{
		Use:     "train",
		Short:   "Fit a random forest on a labeled CSV and save the artifact",
		Example: "  trainctl train --data wdbc.data --out cancermodel.json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fnTrain(cmd.Context(), opts, log, cmd.OutOrStdout())
			return err
		},
	}
	tf := trainCmd.Flags()
	tf.StringVar(&opts.DataPath, "data", opts.DataPath, "Training CSV (raw wdbc.data or a headered file with a target column)")
	tf.StringVar(&opts.DataURL, "data-url", opts.DataURL, "Download source used when --data does not exist (empty disables)")
	tf.StringVar(&opts.ModelOut, "out", opts.ModelOut, "Model artifact output path")
	tf.StringVar(&opts.FeaturesOut, "features-out", opts.FeaturesOut, "Feature list output path (empty to skip)")
	tf.Float64Var(&opts.TestFraction, "test-fraction", opts.TestFraction, "Held-out fraction used for the test score")
	tf.Int64Var(&opts.Seed, "seed", opts.Seed, "Random seed for the split and the forest")
	tf.IntVar(&opts.Trees, "trees", opts.Trees, "Number of trees")
	tf.IntVar(&opts.MaxDepth, "max-depth", opts.MaxDepth, "Maximum tree depth (0 for unlimited)")
	tf.IntVar(&opts.Workers, "workers", opts.Workers, "Trees grown in parallel (0 for GOMAXPROCS)")

	var evalModel, evalData string
	evalCmd := &cobra.Command{
		Use:     "evaluate",
		Short:   "Score a saved model against a labeled CSV",
		Example: "  trainctl evaluate --model cancermodel.json --data wdbc.data",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fnEvaluate(evalModel, evalData, cmd.OutOrStdout())
			return err
		},
	}
	evalCmd.Flags().StringVar(&evalModel, "model", "cancermodel.json", "Model artifact path")
	evalCmd.Flags().StringVar(&evalData, "data", "wdbc.data", "Labeled CSV")

	var (
		predModel string
		vals      [6]float64
	)
	predCmd := &cobra.Command{
		Use:     "predict",
		Short:   "Classify one set of measurements",
		Example: "  trainctl predict --mean-radius 14 --mean-texture 20 --mean-perimeter 90 --mean-area 600 --mean-smoothness 0.1 --mean-compactness 0.1",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := diagnosis.FeatureVector{
				MeanRadius:      vals[0],
				MeanTexture:     vals[1],
				MeanPerimeter:   vals[2],
				MeanArea:        vals[3],
				MeanSmoothness:  vals[4],
				MeanCompactness: vals[5],
			}
			res := fnPredict(cmd.Context(), predModel, v, log, cmd.OutOrStdout())
			if !res.OK() {
				return fmt.Errorf("prediction not available: %s", res.Kind)
			}
			return nil
		},
	}
	predCmd.Flags().StringVar(&predModel, "model", "cancermodel.json", "Model artifact path")
	for i, name := range []string{"mean-radius", "mean-texture", "mean-perimeter", "mean-area", "mean-smoothness", "mean-compactness"} {
		predCmd.Flags().Float64Var(&vals[i], name, 0, diagnosis.FeatureNames[i])
	}

	root.AddCommand(trainCmd, evalCmd, predCmd)
	return root
}

// MainWithArgs runs the CLI with explicit args and streams. It returns an
// exit code.
func MainWithArgs(args []string, stdout, stderr io.Writer) int {
	cfg := &Config{LogLvl: envStr("TRAINCTL_LOG_LEVEL", "info")}
	root := buildRootCmdWith(cfg, stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// Main is the entry point used by cmd/trainctl.
func Main() int { return MainWithArgs(os.Args[1:], os.Stdout, os.Stderr) }
