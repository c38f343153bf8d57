package irt

// SelectNextItem returns the index of the unadministered item carrying the
// most Fisher information at the current theta estimate, or -1 if every item
// has been administered. Ties break toward the lower index so selection is
// deterministic.
func SelectNextItem(theta float64, items []ItemParameter, administered map[int]bool) int {
	best := -1
	bestInfo := 0.0
	for i, item := range items {
		if administered[i] {
			continue
		}
		info := FisherInformation(theta, item)
		if best == -1 || info > bestInfo {
			best = i
			bestInfo = info
		}
	}
	return best
}

// SelectItemKL returns the index of the unadministered item maximizing the
// symmetric KL divergence between the response distributions at
// theta ± delta·SE, or -1 if none remain. Compared to raw Fisher information
// this favors items that separate the plausible ability region early in a
// test, when SE is still wide.
func SelectItemKL(est Estimate, items []ItemParameter, administered map[int]bool, delta float64) int {
	if delta <= 0 {
		delta = 1
	}
	lo := est.Theta - delta*est.SE
	hi := est.Theta + delta*est.SE

	best := -1
	bestKL := 0.0
	for i, item := range items {
		if administered[i] {
			continue
		}
		kl := KLDivergence(hi, lo, item) + KLDivergence(lo, hi, item)
		if best == -1 || kl > bestKL {
			best = i
			bestKL = kl
		}
	}
	return best
}
