package diag

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// maxRecordSize bounds a single build tool line; rendered messages for large
// macro expansions can be several megabytes.
const maxRecordSize = 64 << 20

// Stream lazily decodes a concatenation of JSON diagnostic records.
//
// When a record fails to decode, the whole raw text is yielded once as the
// rendered message and the sequence ends. This keeps plain-text compiler output
// usable by the same consumers as JSON output.
func Stream(raw string) iter.Seq[Diagnostic] {
	return func(yield func(Diagnostic) bool) {
		dec := json.NewDecoder(strings.NewReader(raw))
		for {
			var d Diagnostic
			err := dec.Decode(&d)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Diagnostic{Rendered: raw})
				return
			}
			if !yield(d) {
				return
			}
		}
	}
}

// ProjectStream decodes build tool output, one JSON record per line.
// A malformed line yields a non-nil error; decoding resumes with the next line.
func ProjectStream(raw string) iter.Seq2[ProjectDiagnostic, error] {
	return func(yield func(ProjectDiagnostic, error) bool) {
		sc := bufio.NewScanner(strings.NewReader(raw))
		sc.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
		lineNo := 0
		for sc.Scan() {
			lineNo++
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			var pd ProjectDiagnostic
			if err := json.Unmarshal([]byte(line), &pd); err != nil {
				if !yield(ProjectDiagnostic{}, fmt.Errorf("line %d: %w", lineNo, err)) {
					return
				}
				continue
			}
			if !yield(pd, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(ProjectDiagnostic{}, fmt.Errorf("scan build output: %w", err))
		}
	}
}
