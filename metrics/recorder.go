// Package metrics records request, render and indexing metrics for the
// documentation server. Components take a Recorder; NoopRecorder is the
// default when metrics are disabled.
package metrics

import "time"

// Render results.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Recorder receives observations from the server and the indexer.
type Recorder interface {
	ObserveRequest(method, route string, status int, d time.Duration)
	IncPageRender(category, result string)
	ObserveIndex(d time.Duration, pages int, err error)
}

// NoopRecorder discards every observation.
type NoopRecorder struct{}

func (NoopRecorder) ObserveRequest(string, string, int, time.Duration) {}
func (NoopRecorder) IncPageRender(string, string)                      {}
func (NoopRecorder) ObserveIndex(time.Duration, int, error)            {}
