package similarity

import "math"

// Cosine scores two texts by the cosine of their term-frequency vectors.
// The zero value is ready to use.
type Cosine struct{}

// Similarity returns a value in [0, 1]; texts without usable terms score 0.
func (Cosine) Similarity(a, b string) (float64, error) {
	return cosine(Tokenize(a), Tokenize(b)), nil
}

func cosine(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	dot := 0.0
	for term, ca := range a {
		if cb, ok := b[term]; ok {
			dot += float64(ca * cb)
		}
	}
	if dot == 0 {
		return 0
	}

	sim := dot / (norm(a) * norm(b))
	if sim > 1 {
		sim = 1
	}
	return sim
}

func norm(v map[string]int) float64 {
	sum := 0.0
	for _, c := range v {
		sum += float64(c * c)
	}
	return math.Sqrt(sum)
}
