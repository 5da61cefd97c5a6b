package trainctl

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"diagnosd/internal/diagnosis"
)

// Predict runs one offline prediction through the same service the HTTP
// server uses and prints the page text.
func Predict(ctx context.Context, modelPath string, v diagnosis.FeatureVector, log zerolog.Logger, out io.Writer) diagnosis.Result {
	svc := diagnosis.Load(diagnosis.Config{ModelPath: modelPath, Logger: &log})
	res := svc.Predict(ctx, v)
	fmt.Fprintln(out, res.Text())
	return res
}
