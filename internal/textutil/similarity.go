package textutil

// CosineSimilarity returns the cosine of the angle between a and b, clamped
// to [0, 1]. Nil or empty fingerprints score 0.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	small, large := a, b
	if len(small.weights) > len(large.weights) {
		small, large = large, small
	}
	var dot float64
	for token, w := range small.weights {
		dot += w * large.weights[token]
	}
	return min(max(dot/(a.norm*b.norm), 0), 1)
}
