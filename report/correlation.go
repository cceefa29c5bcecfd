package report

import "math"

// CorrMatrix is a symmetric Pearson correlation matrix. NaN marks pairs without
// enough overlapping values or with zero variance.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64
}

// correlations computes pairwise-complete Pearson coefficients: for each pair only rows
// where both values are present are used.
func correlations(names []string, series [][]float64) *CorrMatrix {
	if len(names) < 2 {
		return nil
	}
	m := &CorrMatrix{Columns: names, Values: make([][]float64, len(names))}
	for i := range names {
		m.Values[i] = make([]float64, len(names))
	}
	for i := range names {
		for j := i; j < len(names); j++ {
			r := pearson(series[i], series[j])
			if i == j && !math.IsNaN(r) {
				r = 1
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func pearson(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var count int
	var sumA, sumB float64
	for k := 0; k < n; k++ {
		if math.IsNaN(a[k]) || math.IsNaN(b[k]) {
			continue
		}
		sumA += a[k]
		sumB += b[k]
		count++
	}
	if count < 2 {
		return math.NaN()
	}
	meanA := sumA / float64(count)
	meanB := sumB / float64(count)

	var cov, varA, varB float64
	for k := 0; k < n; k++ {
		if math.IsNaN(a[k]) || math.IsNaN(b[k]) {
			continue
		}
		da := a[k] - meanA
		db := b[k] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 || varB == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varA*varB)
}
