package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // failed files and stages only
	LevelPhase               // the run as a whole
	LevelDetail              // per-file spans and points
	LevelDebug               // per-stage spans
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level, case-insensitively.
func ParseLevel(s string) (Level, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for l, name := range levelNames {
		if name == want {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// maxScope is the finest scope a level lets through.
func (l Level) maxScope() Scope {
	switch l {
	case LevelPhase:
		return ScopeRun
	case LevelDetail:
		return ScopeFile
	case LevelDebug:
		return ScopeStage
	}
	return 0
}

// Allows reports whether ev passes the level. Failures are let through at
// every level above off, whatever their scope.
func (l Level) Allows(ev *Event) bool {
	if l == LevelOff {
		return false
	}
	if ev.Err != "" {
		return true
	}
	return ev.Scope <= l.maxScope()
}
