package dataset

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"github.com/pivolan/go_utils"
)

const (
	colDatetime = "datetime"
	colStation  = "station"
	colAreaType = "area_type"
)

// Canonical keys of the six pollutant columns, in models.Pollutants order.
var pollutantKeys = []string{"pm2_5", "pm10", "so2", "no2", "co", "o3"}

var requiredKeys = append([]string{colDatetime, colStation}, pollutantKeys...)

var coreKeys = append([]string{colAreaType}, requiredKeys...)

var nonAlnum = regexp.MustCompile("[^a-z0-9]+")

// headerKey maps a raw CSV header onto the key used for column matching:
// transliterated to ASCII, lower-cased, runs of other symbols collapsed to "_".
func headerKey(header string) string {
	key := strings.ToLower(strings.TrimSpace(unidecode.Unidecode(header)))
	key = nonAlnum.ReplaceAllString(key, "_")
	return strings.Trim(key, "_")
}

func isCoreColumn(key string) bool {
	return go_utils.InArray(key, coreKeys)
}

// columnLayout is the result of header analysis.
type columnLayout struct {
	index   map[string]int
	auxIdx  []int
	auxName []string
}

// analyzeHeaders binds the core columns and collects the remaining ones as auxiliary.
// Duplicate display names get a numeric suffix; the first occurrence of a core key wins.
func analyzeHeaders(headers []string) (*columnLayout, error) {
	layout := &columnLayout{index: make(map[string]int)}
	names := validateHeaders(headers)
	for i, header := range headers {
		key := headerKey(header)
		if isCoreColumn(key) {
			if _, seen := layout.index[key]; !seen {
				layout.index[key] = i
				continue
			}
		}
		layout.auxIdx = append(layout.auxIdx, i)
		layout.auxName = append(layout.auxName, names[i])
	}
	for _, key := range requiredKeys {
		if _, ok := layout.index[key]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, key)
		}
	}
	return layout, nil
}

// validateHeaders trims display names, names empty ones by position and de-duplicates.
func validateHeaders(headers []string) []string {
	seen := make(map[string]int)
	result := make([]string, len(headers))

	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("column_%d", i+1)
		}
		originalHeader := header
		counter := 1
		for {
			if _, exists := seen[header]; exists {
				header = fmt.Sprintf("%s_%d", originalHeader, counter)
				counter++
			} else {
				seen[header] = 1
				break
			}
		}
		result[i] = header
	}
	return result
}

var missingMarkers = []string{"", "na", "nan", "null", "none", "n/a"}

func isMissing(value string) bool {
	return go_utils.InArray(strings.ToLower(strings.TrimSpace(value)), missingMarkers)
}

// parseLevel parses a numeric cell, returning ok=false for missing markers, garbage
// and non-finite values such as "inf".
func parseLevel(value string) (float64, bool) {
	if isMissing(value) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// isNumericData reports whether every non-missing value parses as a number.
func isNumericData(values []string) bool {
	numeric := 0
	for _, value := range values {
		if isMissing(value) {
			continue
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
			return false
		}
		numeric++
	}
	return numeric > 0
}
