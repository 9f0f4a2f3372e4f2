// Package diag defines the core diagnostic model shared by every checking
// phase: name resolution, type inference, constant folding, and the bytecode
// compiler.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced by the resolver, unifier, and evaluator.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//   - Model fix suggestions as structured edits an editor integration can
//     apply directly, without re-deriving them from the diagnostic text.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/diagfmt and internal/ide.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional Fix records describing how to address the problem.
//
// Notes should be used sparingly: each note must add new context (e.g. "type
// declared here") rather than repeating the diagnostic message.
//
// # Fix suggestions
//
// Fix represents a possible automated correction. Each fix carries:
//
//   - Title – short label used in UI listings.
//   - Kind – coarse classification (quick fix, refactor, rewrite, source action).
//   - Applicability – confidence level: AlwaysSafe, SafeWithHeuristics,
//     ManualReview.
//   - IsPreferred – optionally mark the most relevant fix when several exist.
//   - Edits – concrete text edits (Span + new/old text) to apply.
//
// TextEdit enforces spans in source coordinates; OldText acts as an optional
// guard a caller can use to validate the surrounding text before applying an
// edit.
//
// # Emitting diagnostics
//
// Phases should use a diag.Reporter to decouple emission from storage. A
// caller constructs a ReportBuilder via NewReportBuilder (or the helper
// functions ReportError/ReportWarning/ReportInfo) and chains WithNote /
// WithFixSuggestion before calling Emit.
//
// When no additional metadata is needed, phases may call Reporter.Report(...)
// directly. diag.BagReporter aggregates diagnostics into a Bag, which
// supports sorting, deduplication, filtering, and transformation.
//
// # Consumers
//
//   - internal/diagfmt: renders Diagnostics as pretty terminal output.
//   - internal/ide: serves Diagnostics over the line-delimited editor protocol.
//   - internal/driver: coordinates bag collection per module and transports
//     diagnostic data to CLI commands.
//
// Keep the data model deterministic: any new fields should avoid side effects
// so the CLI and future tooling can safely serialise diagnostics for caching
// and testing.
package diag
