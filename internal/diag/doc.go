// Package diag models the diagnostics a Rust toolchain emits while the repair
// loop compiles the file under repair.
//
// # Data model
//
// Diagnostic is one compiler record: the rendered human text (what the
// suggestion scrapers look at) and the spans naming the files it refers to.
// ProjectDiagnostic is the wrapper the build tool puts around compiler records
// when it multiplexes them onto its standard output.
//
// # Decoding
//
// Stream decodes the compiler's error stream, a concatenation of JSON values.
// Decoding degrades instead of failing: the first undecodable record turns the entire raw text
// into a single rendered message, so human readable output still reaches the
// patchers. ProjectStream decodes the build tool's line oriented output and
// reports malformed lines as errors without stopping.
//
// # Scope
//
// Package diag performs no IO and no pattern matching on rendered text; the
// suggestion grammar lives in internal/suggest.
package diag
