package recall

import "fmt"

// Level is a coarse proficiency level (CEFR-style).
type Level int

const (
	A1 Level = iota + 1
	A2
	B1
	B2
	C1
	C2
)

// Band groups levels into the three tiers the weighting and strategy
// defaults distinguish.
type Band int

const (
	Beginner Band = iota + 1
	Intermediate
	Advanced
)

var levelNames = [...]string{A1: "A1", A2: "A2", B1: "B1", B2: "B2", C1: "C1", C2: "C2"}

// IsValid reports whether l is a valid level (A1 through C2).
func (l Level) IsValid() bool {
	return l >= A1 && l <= C2
}

// String returns the level name ("A1" … "C2").
func (l Level) String() string {
	if l.IsValid() {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Band returns the proficiency band for the level.
// Invalid levels map to Beginner.
func (l Level) Band() Band {
	switch l {
	case B1, B2:
		return Intermediate
	case C1, C2:
		return Advanced
	default:
		return Beginner
	}
}
