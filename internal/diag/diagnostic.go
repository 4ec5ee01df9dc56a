package diag

import "strings"

// Span is a source location attached to a compiler diagnostic.
type Span struct {
	FileName  string `json:"file_name"`
	LineStart int    `json:"line_start,omitempty"`
	LineEnd   int    `json:"line_end,omitempty"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

// ErrorCode mirrors rustc's `code` object.
type ErrorCode struct {
	Code string `json:"code"`
}

// Diagnostic is one compiler emission: the rendered human text plus the files it points at.
type Diagnostic struct {
	Rendered string     `json:"rendered"`
	Level    Level      `json:"level,omitempty"`
	Code     *ErrorCode `json:"code,omitempty"`
	Spans    []Span     `json:"spans"`
}

// ProjectDiagnostic is the build tool wrapper around a compiler diagnostic.
// Records without a message (artifacts, build-finished markers) carry Message == nil.
type ProjectDiagnostic struct {
	Reason  string      `json:"reason,omitempty"`
	Message *Diagnostic `json:"message"`
}

// CodeString returns the error code (E0106, ...) or "" when none was reported.
func (d *Diagnostic) CodeString() string {
	if d == nil || d.Code == nil {
		return ""
	}
	return d.Code.Code
}

// ErrCode returns the error code as a Code.
func (d *Diagnostic) ErrCode() Code { return Code(d.CodeString()) }

// References reports whether one of the spans points into srcPath.
// Build tools report file names relative to the package root while callers
// hand in the path of the file under repair, so containment is by substring.
func (d *Diagnostic) References(srcPath string) bool {
	if d == nil {
		return false
	}
	for _, sp := range d.Spans {
		if sp.FileName == "" {
			continue
		}
		if strings.Contains(srcPath, sp.FileName) {
			return true
		}
	}
	return false
}

// Primary returns the first primary span, or the first span if none is marked.
func (d *Diagnostic) Primary() (Span, bool) {
	if d == nil || len(d.Spans) == 0 {
		return Span{}, false
	}
	for _, sp := range d.Spans {
		if sp.IsPrimary {
			return sp, true
		}
	}
	return d.Spans[0], true
}
