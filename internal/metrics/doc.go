// Package metrics records navigation build and lookup metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	loader := site.NewLoader(path, site.WithRecorder(recorder))
//
// The preview server exposes the Prometheus registry through HTTPHandler.
package metrics
