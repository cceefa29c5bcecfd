package report

import (
	"math"
	"sort"
)

type NumberStats struct {
	Average   float64
	Median    float64
	Min       float64
	Max       float64
	Std       float64
	Count     int
	Quantiles map[float64]float64
	IQR       float64 // interquartile range
	Outliers  int     // values outside 1.5 IQR from the quartiles
}

var quantileList = []float64{0.01, 0.25, 0.5, 0.75, 0.99}

// calculateQuantile interpolates linearly between the closest ranks of sorted.
func calculateQuantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	pos := p * float64(len(sorted)-1)
	floor := math.Floor(pos)
	ceil := math.Ceil(pos)

	if floor == ceil {
		return sorted[int(pos)]
	}

	lower := sorted[int(floor)]
	upper := sorted[int(ceil)]
	fraction := pos - floor

	return lower + fraction*(upper-lower)
}

func countOutliers(numbers []float64, q1 float64, q3 float64, iqr float64) int {
	lowerBound := q1 - 1.5*iqr
	upperBound := q3 + 1.5*iqr

	count := 0
	for _, num := range numbers {
		if num < lowerBound || num > upperBound {
			count++
		}
	}
	return count
}

// AnalyzeNumbers computes descriptive statistics, rounded to two decimals.
// It returns nil for an empty slice.
func AnalyzeNumbers(numbers []float64) *NumberStats {
	if len(numbers) == 0 {
		return nil
	}

	sorted := make([]float64, len(numbers))
	copy(sorted, numbers)
	sort.Float64s(sorted)

	sum := 0.0
	for _, num := range numbers {
		sum += num
	}
	avg := sum / float64(len(numbers))

	variance := 0.0
	for _, num := range numbers {
		variance += (num - avg) * (num - avg)
	}
	std := 0.0
	if len(numbers) > 1 {
		std = math.Sqrt(variance / float64(len(numbers)-1))
	}

	var median float64
	if len(sorted)%2 == 0 {
		median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	} else {
		median = sorted[len(sorted)/2]
	}

	quantiles := make(map[float64]float64)
	for _, p := range quantileList {
		quantiles[p] = roundToTwo(calculateQuantile(sorted, p))
	}

	iqr := quantiles[0.75] - quantiles[0.25]

	return &NumberStats{
		Average:   roundToTwo(avg),
		Median:    roundToTwo(median),
		Min:       roundToTwo(sorted[0]),
		Max:       roundToTwo(sorted[len(sorted)-1]),
		Std:       roundToTwo(std),
		Count:     len(numbers),
		Quantiles: quantiles,
		IQR:       roundToTwo(iqr),
		Outliers:  countOutliers(numbers, quantiles[0.25], quantiles[0.75], iqr),
	}
}

func roundToTwo(num float64) float64 {
	return math.Round(num*100) / 100
}

type Bin struct {
	RangeStart float64
	RangeEnd   float64
	Count      int
}

// histogram splits the finite values into equal-width bins between their min and max.
func histogram(values []float64, bins int) []Bin {
	if bins <= 0 {
		return nil
	}
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return nil
	}
	values = finite
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return []Bin{{RangeStart: min, RangeEnd: max, Count: len(values)}}
	}
	width := (max - min) / float64(bins)
	result := make([]Bin, bins)
	for i := range result {
		result[i].RangeStart = roundToTwo(min + float64(i)*width)
		result[i].RangeEnd = roundToTwo(min + float64(i+1)*width)
	}
	for _, v := range values {
		idx := int((v - min) / width)
		if idx < 0 {
			idx = 0
		}
		if idx >= bins {
			idx = bins - 1
		}
		result[idx].Count++
	}
	return result
}
