package recall

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// ComponentType identifies one layer of the skill component chain.
// The chain is ordered: lower layers are prerequisites for higher ones.
type ComponentType int

const (
	Phonology  ComponentType = iota + 1 // PHON
	Morphology                          // MORPH
	Lexicon                             // LEX
	Syntax                              // SYNT
	Pragmatics                          // PRAG
)

var (
	componentNames = [...]string{
		Phonology:  "PHON",
		Morphology: "MORPH",
		Lexicon:    "LEX",
		Syntax:     "SYNT",
		Pragmatics: "PRAG",
	}
	componentByName = map[string]ComponentType{
		"PHON":  Phonology,
		"MORPH": Morphology,
		"LEX":   Lexicon,
		"SYNT":  Syntax,
		"PRAG":  Pragmatics,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = ComponentType(0)
	_ json.Marshaler           = ComponentType(0)
	_ json.Unmarshaler         = (*ComponentType)(nil)
	_ encoding.TextMarshaler   = ComponentType(0)
	_ encoding.TextUnmarshaler = (*ComponentType)(nil)
)

// ComponentChain returns the full dependency order, lowest layer first.
func ComponentChain() []ComponentType {
	return []ComponentType{Phonology, Morphology, Lexicon, Syntax, Pragmatics}
}

// IsValid reports whether c is a valid component type.
func (c ComponentType) IsValid() bool {
	return c >= Phonology && c <= Pragmatics
}

// Position returns the zero-based position of c in the component chain.
// Invalid components return -1.
func (c ComponentType) Position() int {
	if !c.IsValid() {
		return -1
	}
	return int(c) - 1
}

// Upstream returns the components c depends on, lowest layer first.
func (c ComponentType) Upstream() []ComponentType {
	if !c.IsValid() {
		return nil
	}
	chain := ComponentChain()
	return chain[:c.Position()]
}

// DependsOn reports whether c transitively depends on other.
func (c ComponentType) DependsOn(other ComponentType) bool {
	return c.IsValid() && other.IsValid() && other.Position() < c.Position()
}

// String returns the short name of the component ("PHON" … "PRAG").
// For invalid values it returns "ComponentType(n)".
func (c ComponentType) String() string {
	if c.IsValid() {
		return componentNames[c]
	}
	return fmt.Sprintf("ComponentType(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c ComponentType) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidComponent, int(c))
	}
	return []byte(componentNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ComponentType) UnmarshalText(text []byte) error {
	v, ok := componentByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidComponent, text)
	}
	*c = v
	return nil
}

// MarshalJSON implements json.Marshaler. ComponentType serializes as a JSON string.
func (c ComponentType) MarshalJSON() ([]byte, error) {
	text, err := c.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (c *ComponentType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidComponent, data)
	}
	return c.UnmarshalText([]byte(s))
}
