package recall

import "fmt"

// DefaultParameters are the default memory-model parameter values, fitted
// against the exponential forgetting curve R(t) = e^(-t/S).
var DefaultParameters = [17]float64{
	0.4, 1.2, 3.0, 7.5, // w[0..3]  initial stability S₀(G) per rating
	5.0, 1.2, // w[4..5]  initial difficulty base and rating slope
	0.8, 0.05, // w[6..7]  difficulty delta and mean reversion
	1.6, 0.12, 1.1, // w[8..10] recall stability growth
	1.8, 0.15, 0.35, 1.2, // w[11..14] forget stability
	0.6, 1.5, // w[15..16] hard penalty, easy bonus
}

// LowerBounds defines the minimum allowed value for each parameter.
var LowerBounds = [17]float64{
	0.01, 0.01, 0.01, 0.01,
	1.0, 0.0,
	0.01, 0.0,
	0.0, 0.0, 0.01,
	0.01, 0.01, 0.01, 0.01,
	0.0, 1.0,
}

// UpperBounds defines the maximum allowed value for each parameter.
var UpperBounds = [17]float64{
	50.0, 50.0, 50.0, 50.0,
	10.0, 3.0,
	4.0, 0.75,
	4.5, 0.8, 3.5,
	5.0, 0.9, 0.9, 4.0,
	1.0, 6.0,
}

// ValidateParameters checks that all 17 parameters are within [LowerBounds, UpperBounds].
func ValidateParameters(p [17]float64) error {
	for i := 0; i < 17; i++ {
		if p[i] < LowerBounds[i] || p[i] > UpperBounds[i] {
			return fmt.Errorf("%w: w[%d] = %f, bounds [%f, %f]",
				ErrInvalidParameters, i, p[i], LowerBounds[i], UpperBounds[i])
		}
	}
	return nil
}
