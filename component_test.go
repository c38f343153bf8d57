package recall

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestComponentChainOrder(t *testing.T) {
	chain := ComponentChain()
	want := []ComponentType{Phonology, Morphology, Lexicon, Syntax, Pragmatics}
	if len(chain) != len(want) {
		t.Fatalf("chain length = %d, want %d", len(chain), len(want))
	}
	for i, c := range want {
		if chain[i] != c {
			t.Errorf("chain[%d] = %v, want %v", i, chain[i], c)
		}
	}
}

func TestComponentUpstream(t *testing.T) {
	if got := Phonology.Upstream(); len(got) != 0 {
		t.Errorf("Phonology.Upstream() = %v, want empty", got)
	}
	up := Syntax.Upstream()
	want := []ComponentType{Phonology, Morphology, Lexicon}
	if len(up) != len(want) {
		t.Fatalf("Syntax.Upstream() = %v, want %v", up, want)
	}
	for i := range want {
		if up[i] != want[i] {
			t.Errorf("Syntax.Upstream()[%d] = %v, want %v", i, up[i], want[i])
		}
	}
}

func TestComponentDependsOn(t *testing.T) {
	if !Pragmatics.DependsOn(Phonology) {
		t.Error("PRAG should depend on PHON")
	}
	if Phonology.DependsOn(Pragmatics) {
		t.Error("PHON should not depend on PRAG")
	}
	if Lexicon.DependsOn(Lexicon) {
		t.Error("a component does not depend on itself")
	}
}

func TestComponentJSONRoundTrip(t *testing.T) {
	for _, c := range ComponentChain() {
		data, err := json.Marshal(c)
		if err != nil {
			t.Fatalf("Marshal(%s): %v", c, err)
		}
		var back ComponentType
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if back != c {
			t.Errorf("round trip %s → %s", c, back)
		}
	}
}

func TestComponentInvalid(t *testing.T) {
	var c ComponentType
	if err := json.Unmarshal([]byte(`"SEMANTICS"`), &c); !errors.Is(err, ErrInvalidComponent) {
		t.Errorf("error = %v, want ErrInvalidComponent", err)
	}
	if ComponentType(0).Position() != -1 {
		t.Error("invalid component position should be -1")
	}
}

func TestLevelBand(t *testing.T) {
	tests := []struct {
		level Level
		want  Band
	}{
		{A1, Beginner}, {A2, Beginner},
		{B1, Intermediate}, {B2, Intermediate},
		{C1, Advanced}, {C2, Advanced},
	}
	for _, tt := range tests {
		if got := tt.level.Band(); got != tt.want {
			t.Errorf("%s.Band() = %v, want %v", tt.level, got, tt.want)
		}
	}
}
