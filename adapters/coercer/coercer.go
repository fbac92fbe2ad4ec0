package coercer

import (
	"math"
	"strconv"
	"strings"

	"digsite/domain/records"
)

// TypeCoercer turns raw cell text into typed record values
type TypeCoercer struct {
	config CoercionConfig
	na     map[string]struct{}
}

// CoercionConfig defines which raw strings read as missing
type CoercionConfig struct {
	NAValues         []string `json:"na_values"`
	TreatNAAsMissing bool     `json:"treat_na_as_missing"`
}

// DefaultNAValues are the markers spreadsheet and table exports commonly use for "no value"
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a", "nan", "null",
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NAValues:         DefaultNAValues,
		TreatNAAsMissing: true,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	na := make(map[string]struct{}, len(config.NAValues))
	for _, v := range config.NAValues {
		na[v] = struct{}{}
	}
	return &TypeCoercer{config: config, na: na}
}

// CoerceCell converts one raw cell: missing, then number, then string
func (c *TypeCoercer) CoerceCell(raw string) records.Value {
	if raw == "" || c.IsNA(raw) {
		return records.NewMissing()
	}
	if n, ok := ParseNumber(raw); ok {
		return records.NewNumber(n)
	}
	return records.NewString(raw)
}

// IsNA reports whether raw is one of the configured missing markers
func (c *TypeCoercer) IsNA(raw string) bool {
	if !c.config.TreatNAAsMissing {
		return false
	}
	_, ok := c.na[raw]
	return ok
}

// ParseNumber accepts plain decimal or scientific notation with optional surrounding spaces.
// Hex literals, digit separators, infinities and NaN are rejected.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == '-', r == '+', r == 'e', r == 'E':
		default:
			return 0, false
		}
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}
