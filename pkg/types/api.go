package types

// PredictRequest is the JSON body accepted by POST /api/predict. All six
// fields are required; they mirror the HTML form field names.
type PredictRequest struct {
	// example: 14.0
	MeanRadius *float64 `json:"mean_radius" example:"14.0"`
	// example: 20.0
	MeanTexture *float64 `json:"mean_texture" example:"20.0"`
	// example: 90.0
	MeanPerimeter *float64 `json:"mean_perimeter" example:"90.0"`
	// example: 600.0
	MeanArea *float64 `json:"mean_area" example:"600.0"`
	// example: 0.1
	MeanSmoothness *float64 `json:"mean_smoothness" example:"0.1"`
	// example: 0.1
	MeanCompactness *float64 `json:"mean_compactness" example:"0.1"`
}

// PredictResponse reports the outcome of one prediction.
type PredictResponse struct {
	// Outcome kind: success, model_unavailable or prediction_failure.
	// example: success
	Kind string `json:"kind" example:"success"`
	// Diagnosis label when Kind is success: malignant or benign.
	// example: benign
	Label string `json:"label,omitempty" example:"benign"`
	// Human readable text, identical to what the HTML page shows.
	// example: Prediction: Benign (Non-Cancerous)
	Text string `json:"text" example:"Prediction: Benign (Non-Cancerous)"`
	// Diagnostic message when Kind is prediction_failure.
	Message string `json:"message,omitempty"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Model state: ready or unavailable.
	// example: ready
	State string `json:"state" example:"ready"`
	// Loaded model details; nil when unavailable.
	Model *ModelInfo `json:"model,omitempty"`
	// Why the model is unavailable.
	Reason string `json:"reason,omitempty"`
	// Successful predictions served.
	// example: 12
	PredictionsTotal uint64 `json:"predictions_total" example:"12"`
	// Predictions that failed inside the model.
	// example: 0
	FailuresTotal uint64 `json:"failures_total" example:"0"`
	// Requests answered with model unavailable.
	// example: 0
	UnavailableTotal uint64 `json:"unavailable_total" example:"0"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
