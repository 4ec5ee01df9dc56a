package diag

import (
	"encoding/json"
	"strings"
)

// Level defines the importance of a diagnostic as reported by rustc.
type Level uint8

const (
	// LevelUnknown is used for levels this tool does not recognise.
	LevelUnknown Level = iota
	LevelNote
	LevelHelp
	LevelWarning
	LevelError
	// LevelICE marks an internal compiler error.
	LevelICE
)

func (l Level) String() string {
	switch l {
	case LevelNote:
		return "note"
	case LevelHelp:
		return "help"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelICE:
		return "error: internal compiler error"
	}
	return "unknown"
}

// ParseLevel converts rustc's textual level to Level.
func ParseLevel(s string) Level {
	switch strings.TrimSpace(s) {
	case "note", "failure-note":
		return LevelNote
	case "help":
		return LevelHelp
	case "warning":
		return LevelWarning
	case "error":
		return LevelError
	case "error: internal compiler error":
		return LevelICE
	}
	return LevelUnknown
}

// IsError reports whether the level fails the build.
func (l Level) IsError() bool {
	return l >= LevelError
}

func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON never fails on unknown strings: the level is informational only.
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*l = LevelUnknown
		return nil
	}
	*l = ParseLevel(s)
	return nil
}
