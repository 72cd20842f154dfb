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

// Package observability records spans and metrics for tooltip controllers.
//
// A controller opens one span per state transition and records a metric per
// executed host effect. Hosts that do not export traces use NoOpTracer.
package observability

import "context"

// Tracer instruments tooltip operations.
type Tracer interface {
	// StartSpan creates a span and returns a context carrying it.
	StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, *Span)

	// EndSpan completes a span and computes its duration.
	EndSpan(span *Span)

	// RecordMetric records a point-in-time value with labels.
	RecordMetric(name string, value float64, labels map[string]string)
}

type contextKey string

const spanContextKey contextKey = "grouptip.span"

// SpanFromContext returns the span stored in ctx, or nil.
func SpanFromContext(ctx context.Context) *Span {
	if span, ok := ctx.Value(spanContextKey).(*Span); ok {
		return span
	}
	return nil
}

// ContextWithSpan returns a context carrying span.
func ContextWithSpan(ctx context.Context, span *Span) context.Context {
	return context.WithValue(ctx, spanContextKey, span)
}
