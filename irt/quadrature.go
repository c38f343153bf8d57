package irt

import "math"

// gaussHermite computes the nodes and weights of n-point Gauss-Hermite
// quadrature for ∫ f(x)·e^(-x²) dx, via the Hermite three-term recurrence
// with Newton polishing of each root. Nodes are returned in descending order;
// the rule is symmetric about zero.
func gaussHermite(n int) (x, w []float64) {
	const (
		eps     = 1e-14
		maxIter = 64
	)
	pim4 := 1.0 / math.Pow(math.Pi, 0.25)

	x = make([]float64, n)
	w = make([]float64, n)
	m := (n + 1) / 2

	var z, pp float64
	for i := 0; i < m; i++ {
		// Initial root guesses, refined from the previous roots.
		switch i {
		case 0:
			z = math.Sqrt(float64(2*n+1)) - 1.85575*math.Pow(float64(2*n+1), -1.0/6.0)
		case 1:
			z -= 1.14 * math.Pow(float64(n), 0.426) / z
		case 2:
			z = 1.86*z - 0.86*x[0]
		case 3:
			z = 1.91*z - 0.91*x[1]
		default:
			z = 2*z - x[i-2]
		}

		for it := 0; it < maxIter; it++ {
			p1 := pim4
			p2 := 0.0
			for j := 0; j < n; j++ {
				p3 := p2
				p2 = p1
				p1 = z*math.Sqrt(2.0/float64(j+1))*p2 - math.Sqrt(float64(j)/float64(j+1))*p3
			}
			pp = math.Sqrt(2*float64(n)) * p2
			z1 := z
			z = z1 - p1/pp
			if math.Abs(z-z1) <= eps {
				break
			}
		}

		x[i] = z
		x[n-1-i] = -z
		w[i] = 2.0 / (pp * pp)
		w[n-1-i] = w[i]
	}
	return x, w
}
