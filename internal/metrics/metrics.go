// Package metrics provides the Recorder interface and a noop implementation.
package metrics

import "time"

// Recorder is the interface for recording jar operation metrics.
type Recorder interface {
	RecordHit(name string)
	RecordMiss(name string)
	RecordLatency(op string, d time.Duration)
	RecordError(op string)
}

// Noop is a Recorder that discards all data.
type Noop struct{}

func (Noop) RecordHit(name string)                    {}
func (Noop) RecordMiss(name string)                   {}
func (Noop) RecordLatency(op string, d time.Duration) {}
func (Noop) RecordError(op string)                    {}
