// Package diag defines the diagnostic model shared by every pipebind phase.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced by the
//     lexer, the parser and the binding-target checker.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//   - Model fix suggestions as plain text edits.
//
// # Scope
//
// Package diag does not format or print anything. Rendering lives in
// internal/diagfmt; orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning, Error.
//   - Code – numeric identifier with a stable string form. Families:
//     LEX (lexer), SYN (parser), BND (rejected binding targets, one code per
//     classification), SCP (scope findings), IO, PRJ (configuration), OBS.
//   - Message – human oriented text. BND messages are multi-line and always
//     echo the rejected source.
//   - Primary span, optional Notes and Fixes.
//
// # Emitting diagnostics
//
// Phases report through a Reporter. ReportBuilder (ReportError, ReportWarning,
// ReportInfo) chains WithNote / WithFix before Emit. BagReporter stores into a
// Bag, which supports limits, sorting and filtering. DedupReporter drops repeats
// before they reach the Bag.
package diag
