// Package pipeline implements the configuration-driven batch pipeline shared
// by the email-ingestion and sheet-push workflows.
//
// A Runner validates the whole config list up front, then drives each item
// sequentially through Source Reader -> Tabular Extractor (when the source
// yields a raw artifact) -> Destination Writer, with a fixed pause between
// items. Per-item failures are recorded in the batch result and never abort
// sibling items; only a pre-flight validation failure aborts the batch, and
// it does so before any side effect.
//
// A Reporter performs the same traversal read-only, grading each item with
// pass/warn/fail checks for dry runs and status output.
//
// The concrete readers, writers, and extractors live in the gmail, sheets,
// and extract packages; this package only defines their contracts.
package pipeline
