package cfront

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// ConfigureTracing installs a 'cfront' trace as the global syntax tracer
// if none is set yet, and sets that global tracer's level. It does not
// change the level of the per-package 'cfront.*' traces that packages
// obtain with tracing.Select.
func ConfigureTracing(level tracing.TraceLevel) {
	if gtrace.SyntaxTracer == nil {
		gtrace.SyntaxTracer = tracing.Select("cfront")
	}
	gtrace.SyntaxTracer.SetTraceLevel(level)
}

// T traces to the global front-end tracer.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}
