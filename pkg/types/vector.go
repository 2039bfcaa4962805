package types

// CloneVector returns an independent copy of v. Cached vectors are handed out
// as copies so caller mutations never leak back into a cache layer.
func CloneVector(v []float32) []float32 {
	if v == nil {
		return nil
	}
	out := make([]float32, len(v))
	copy(out, v)
	return out
}

// VectorsEqual reports whether two vectors have identical width and elements.
func VectorsEqual(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// AbsDiff returns the elementwise absolute difference |a - b|.
// Returns ErrDimensionMismatch when the widths differ.
func AbsDiff(a, b []float32) ([]float32, error) {
	if len(a) != len(b) {
		return nil, ErrDimensionMismatch
	}
	out := make([]float32, len(a))
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		out[i] = d
	}
	return out, nil
}
