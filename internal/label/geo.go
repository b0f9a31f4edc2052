package label

import (
	"errors"
	"fmt"
	"strings"
)

const geoSeparator = " - "

var ErrMalformedGeoLabel = errors.New("malformed geo label")

// GeoLabel splits a composite "code - name" label such as "077 - Seine-et-Marne"
// into a normalized code and the display name.
func GeoLabel(raw string) (string, string, error) {
	cleaned := Clean(raw)
	codePart, namePart, found := strings.Cut(cleaned, geoSeparator)
	if !found {
		return "", "", fmt.Errorf("%w: %q has no %q separator", ErrMalformedGeoLabel, cleaned, geoSeparator)
	}
	return GeoCode(codePart), strings.TrimSpace(namePart), nil
}

// GeoCode normalizes a region or department code.
//
//	"077" -> "77", "001" -> "01", "02A" -> "2A", "971" -> "971", "1" -> "01"
//
// Only numeric codes are zero-padded; other short codes are kept as is.
func GeoCode(raw string) string {
	code := strings.TrimSpace(raw)
	switch {
	case len(code) == 3 && isDigits(code) && !strings.HasPrefix(code, "97"):
		return padCode(strings.TrimLeft(code, "0"))
	case code == "02A" || code == "02B":
		return code[1:]
	case isDigits(code):
		return padCode(code)
	default:
		return code
	}
}

func padCode(code string) string {
	if len(code) >= 2 {
		return code
	}
	return strings.Repeat("0", 2-len(code)) + code
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}
