// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package observability

import (
	"context"
	"fmt"
	"sync"
)

// Metric is a captured RecordMetric call.
type Metric struct {
	Name   string
	Value  float64
	Labels map[string]string
}

// MockTracer captures spans and metrics for inspection in tests.
type MockTracer struct {
	mu      sync.Mutex
	seq     int
	spans   []*Span
	metrics []Metric
}

// NewMockTracer creates an empty capturing tracer.
func NewMockTracer() *MockTracer {
	return &MockTracer{}
}

// StartSpan creates a span with sequential ids.
func (m *MockTracer) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, *Span) {
	m.mu.Lock()
	m.seq++
	id := m.seq
	m.mu.Unlock()

	span := newSpan(ctx, fmt.Sprintf("trace-%d", id), fmt.Sprintf("span-%d", id), name, opts)
	return ContextWithSpan(ctx, span), span
}

// EndSpan completes and stores span.
func (m *MockTracer) EndSpan(span *Span) {
	if span == nil {
		return
	}
	finish(span)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.spans = append(m.spans, span)
}

// RecordMetric stores the metric.
func (m *MockTracer) RecordMetric(name string, value float64, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = append(m.metrics, Metric{Name: name, Value: value, Labels: labels})
}

// Spans returns a copy of the completed spans.
func (m *MockTracer) Spans() []*Span {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Span, len(m.spans))
	copy(out, m.spans)
	return out
}

// Metrics returns the captured metrics named name, or all when name is empty.
func (m *MockTracer) Metrics(name string) []Metric {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Metric
	for _, metric := range m.metrics {
		if name == "" || metric.Name == name {
			out = append(out, metric)
		}
	}
	return out
}

// Reset clears captured spans and metrics.
func (m *MockTracer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spans = nil
	m.metrics = nil
}

var _ Tracer = (*MockTracer)(nil)
