package recall

import (
	"errors"
	"testing"
)

func TestDefaultParametersValid(t *testing.T) {
	if err := ValidateParameters(DefaultParameters); err != nil {
		t.Errorf("DefaultParameters invalid: %v", err)
	}
}

func TestValidateParametersBounds(t *testing.T) {
	p := DefaultParameters
	p[0] = LowerBounds[0] - 0.01
	if err := ValidateParameters(p); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("below lower bound: error = %v, want ErrInvalidParameters", err)
	}

	p = DefaultParameters
	p[16] = UpperBounds[16] + 0.01
	if err := ValidateParameters(p); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("above upper bound: error = %v, want ErrInvalidParameters", err)
	}
}

func TestValidateParametersAtBounds(t *testing.T) {
	// Values exactly at the bounds are allowed.
	if err := ValidateParameters(LowerBounds); err != nil {
		t.Errorf("LowerBounds should validate: %v", err)
	}
	if err := ValidateParameters(UpperBounds); err != nil {
		t.Errorf("UpperBounds should validate: %v", err)
	}
}
