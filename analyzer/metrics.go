/*
Copyright © 2026 The Fob Authors

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package analyzer

import (
	"sync/atomic"
	"time"
)

// MetricsCollector abstracts observability for an Analyze run. An embedder
// supplies one via Config; the default records nothing.
type MetricsCollector interface {
	IncrementCounter(name string)
	RecordDuration(name string, d time.Duration)
	SetGauge(name string, value int64)
}

// NoOpMetricsCollector discards everything. It is the Config default:
// metrics are opt-in, never a silent process-wide singleton.
type NoOpMetricsCollector struct{}

func (NoOpMetricsCollector) IncrementCounter(name string)             {}
func (NoOpMetricsCollector) RecordDuration(name string, d time.Duration) {}
func (NoOpMetricsCollector) SetGauge(name string, value int64)        {}

// DefaultMetricsCollector is an in-memory, atomic-counter collector an
// embedder can inspect after Analyze returns.
type DefaultMetricsCollector struct {
	counters map[string]*int64
	gauges   map[string]*int64
}

// NewDefaultMetricsCollector creates a collector with counters
// pre-registered for the names this package emits; IncrementCounter
// ignores any other name. Gauges are not pre-registered: SetGauge adds a
// new key to the gauge map on first use, without a lock.
func NewDefaultMetricsCollector() *DefaultMetricsCollector {
	names := []string{
		"analyze_calls",
		"modules_scanned",
		"unused_exports_found",
		"cycles_found",
	}
	c := &DefaultMetricsCollector{
		counters: make(map[string]*int64, len(names)),
		gauges:   make(map[string]*int64),
	}
	for _, n := range names {
		var v int64
		c.counters[n] = &v
	}
	return c
}

func (c *DefaultMetricsCollector) IncrementCounter(name string) {
	ptr, ok := c.counters[name]
	if !ok {
		return
	}
	atomic.AddInt64(ptr, 1)
}

func (c *DefaultMetricsCollector) RecordDuration(name string, d time.Duration) {
	c.SetGauge(name+"_ms", d.Milliseconds())
}

func (c *DefaultMetricsCollector) SetGauge(name string, value int64) {
	ptr, ok := c.gauges[name]
	if !ok {
		var v int64
		ptr = &v
		c.gauges[name] = ptr
	}
	atomic.StoreInt64(ptr, value)
}

// CounterValue returns the current value of a named counter, 0 if unset.
func (c *DefaultMetricsCollector) CounterValue(name string) int64 {
	ptr, ok := c.counters[name]
	if !ok {
		return 0
	}
	return atomic.LoadInt64(ptr)
}

// GaugeValue returns the current value of a named gauge, 0 if unset.
func (c *DefaultMetricsCollector) GaugeValue(name string) int64 {
	ptr, ok := c.gauges[name]
	if !ok {
		return 0
	}
	return atomic.LoadInt64(ptr)
}
