package label

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// TotalClass is the aggregate row label used by every breakdown sheet.
const TotalClass = "Total"

var canonicalSizeClasses = []string{"[0,20)", "[20,50)", "[50,100)", "[100,200)", "[200+)"}

// Sheet versions disagree on the unit suffix ("ha)") and on "ou plus" vs "plus".
var sizeClassVariants = map[string]string{
	"[0,20 ha)":       "[0,20)",
	"[0,20)":          "[0,20)",
	"[20,50 ha)":      "[20,50)",
	"[20,50)":         "[20,50)",
	"[50,100 ha)":     "[50,100)",
	"[50,100)":        "[50,100)",
	"[100,200 ha)":    "[100,200)",
	"[100,200)":       "[100,200)",
	"[200 ha ou plus": "[200+)",
	"[200 ou plus":    "[200+)",
	"[200 ha plus":    "[200+)",
	"[200 plus":       "[200+)",
	"[200+)":          "[200+)",
}

// SizeClasses returns the canonical farm-size brackets in ascending order.
func SizeClasses() []string {
	return append([]string(nil), canonicalSizeClasses...)
}

// SizeClass maps a raw size-class label to its canonical bracket. Unknown
// labels come back trimmed but otherwise untouched.
func SizeClass(raw string) string {
	cleaned := Clean(raw)
	if cleaned == "" || cleaned == TotalClass {
		return cleaned
	}
	if canonical, ok := sizeClassVariants[cleaned]; ok {
		return canonical
	}
	return cleaned
}

// Clean applies Unicode NFC composition and trims surrounding whitespace.
func Clean(raw string) string {
	return strings.TrimSpace(norm.NFC.String(raw))
}
