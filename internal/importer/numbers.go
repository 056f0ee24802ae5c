package importer

import (
	"errors"
	"strconv"
	"strings"
)

var errNotANumber = errors.New("not a number")

// ParsePrice turns merchant-formatted prices like "1 299,00 zł",
// "249.90" or "1.299,50 Kč" into a float. Everything except digits,
// separators and a sign is stripped; when both separators appear the
// last one is taken as the decimal point.
func ParsePrice(raw string) (float64, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" {
		return 0, errNotANumber
	}

	// Keep only the last separator; earlier ones are thousands marks.
	lastSep := strings.LastIndexAny(cleaned, ",.")
	if lastSep >= 0 {
		var rebuilt strings.Builder
		for i, r := range cleaned {
			if r == ',' || r == '.' {
				if i == lastSep {
					rebuilt.WriteByte('.')
				}
				continue
			}
			rebuilt.WriteRune(r)
		}
		cleaned = rebuilt.String()
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, errNotANumber
	}
	return value, nil
}

// ParseStock parses an integer stock count, tolerating units and
// whitespace ("12 szt." -> 12).
func ParseStock(raw string) (int, error) {
	var b strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '-' && i == 0 {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" {
		return 0, errNotANumber
	}
	return strconv.Atoi(cleaned)
}
