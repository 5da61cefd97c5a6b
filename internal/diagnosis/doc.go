// Package diagnosis holds the inference service that maps a tumor feature
// vector to a diagnosis. It is structured into small files by concern:
//
//   - types.go: FeatureVector, Label, Result and their display strings.
//   - errors.go: load error types and helpers (IsModelNotFound).
//   - service.go: Service, New/Unavailable constructors and Predict.
//   - loader.go: Load, which never fails hard and degrades to the
//     unavailable variant instead.
//   - events.go / eventpub_memory.go: prediction event publishing.
//   - status_report.go: Status for /status.
//
// A Service is built once at startup and shared by all requests. It holds no
// mutable state besides atomic counters, so Predict is safe for concurrent use.
package diagnosis
