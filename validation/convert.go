package validation

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func ParseStringToInt64(strID string) (int64, error) {
	if strID == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(strID, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ParseStringToFloat accepts a decimal comma ("5,899") as well as a point.
func ParseStringToFloat(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if strings.Contains(text, ",") && !strings.Contains(text, ".") {
		text = strings.Replace(text, ",", ".", 1)
	}
	return strconv.ParseFloat(text, 64)
}

// ParseOptionalFloat returns nil for a blank field.
func ParseOptionalFloat(text string) (*float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	v, err := ParseStringToFloat(text)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// NormalizeText lowercases and strips accents, for matching "São" with "sao".
func NormalizeText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
