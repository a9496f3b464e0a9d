// Package metrics records operational metrics for the batch run. It mirrors
// the storage abstraction: the pipeline depends only on the Recorder
// interface, concrete systems live in subpackages, and a no-op recorder
// keeps metrics safe to call when none is configured.
package metrics

import "time"

// Recorder receives step- and row-level measurements from the pipeline.
type Recorder interface {
	// RecordStep records one pipeline stage execution with its outcome.
	RecordStep(step string, err error, d time.Duration)
	// RecordRows adds to a row counter of the given kind
	// ("fetched", "loaded").
	RecordRows(kind string, n int)
	// Flush pushes collected metrics if the backend needs it.
	Flush() error
}

type nop struct{}

func (nop) RecordStep(string, error, time.Duration) {}
func (nop) RecordRows(string, int)                  {}
func (nop) Flush() error                            { return nil }

// Nop returns a recorder that discards everything.
func Nop() Recorder { return nop{} }

// StatusLabel maps an error to the label value used by step metrics.
func StatusLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
