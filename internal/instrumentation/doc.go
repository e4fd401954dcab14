// Package instrumentation provides OpenTelemetry metrics for sheetsync.
//
// The CLI is a short-lived batch process, so metrics are collected with the
// OTel SDK and flushed to stderr through the stdout exporter when a run ends.
// Collection is off by default and enabled with the --metrics flag.
//
// A nil *Metrics is a valid no-op recorder; callers pass it around without
// guarding each call site.
package instrumentation
