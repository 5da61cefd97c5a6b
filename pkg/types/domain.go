package types

// ModelInfo describes the loaded model artifact.
type ModelInfo struct {
	// Absolute path of the artifact file.
	// example: /srv/diagnosd/cancermodel.json
	Path string `json:"path" example:"/srv/diagnosd/cancermodel.json"`
	// Feature names in the order the model expects them.
	Features []string `json:"features"`
	// Class names indexed by class.
	Classes []string `json:"classes,omitempty"`
	// Number of trees in the ensemble.
	// example: 100
	Trees int `json:"trees,omitempty" example:"100"`
	// Training time in unix seconds.
	// example: 1700000000
	TrainedAtUnix int64 `json:"trained_at_unix,omitempty" example:"1700000000"`
}
