package xsd

import (
	"strconv"
	"strings"
)

// SerializeBoolean renders a boolean in its canonical lexical form.
func SerializeBoolean(value bool) string {
	if value {
		return "true"
	}
	return "false"
}

// DeserializeBoolean parses the canonical ("true"/"false") and numeric
// ("1"/"0") lexical forms, case-sensitively. Anything else yields no value.
func DeserializeBoolean(value string) (bool, bool) {
	switch value {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}

// SerializeInteger renders an integer in base 10.
func SerializeInteger(value int64) string {
	return strconv.FormatInt(value, 10)
}

// DeserializeInteger parses a base-10 integer. Malformed input yields no
// value.
func DeserializeInteger(value string) (int64, bool) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// SerializeDecimal renders a decimal without an exponent, using the shortest
// representation that round-trips through a 64-bit float.
func SerializeDecimal(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// DeserializeDecimal parses a decimal. Fractional precision is bounded by a
// 64-bit float. Malformed input yields no value.
func DeserializeDecimal(value string) (float64, bool) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// NormalizeLocale lowercases a language tag. RDF mandates lower-case locale
// comparison, so every tag is normalised on ingestion.
func NormalizeLocale(locale string) string {
	return strings.ToLower(locale)
}
