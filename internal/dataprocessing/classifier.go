package dataprocessing

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"surveyexport/pkg/contracts/domain"
)

// DefaultColumnCode replaces headers whose slug is empty
const DefaultColumnCode = "COLUMN"

var (
	// prefixPattern finds two letters immediately followed by one decimal digit.
	// Letters never include '_' or digits.
	prefixPattern = regexp.MustCompile(`(\p{L}{2})(\p{Nd})`)
	slugSeparator = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// Classification is the family and column code derived from a header
type Classification struct {
	Family string
	Code   string
}

// ClassifyHeader maps a header onto its column family.
// "[Pu1: ...]" yields family "PU" and code "PU1"; a header without a
// letter-letter-digit run falls into MISC with its slug as the code.
func ClassifyHeader(header string) Classification {
	if m := prefixPattern.FindStringSubmatch(header); m != nil {
		family := strings.ToUpper(m[1])
		return Classification{Family: family, Code: family + m[2]}
	}
	return Classification{Family: domain.MiscFamily, Code: Slugify(header)}
}

// Slugify reduces text to an uppercase ASCII identifier: accents are
// stripped, every other run of non-alphanumerics becomes '_'.
func Slugify(text string) string {
	if text == "" {
		return DefaultColumnCode
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, text)
	if err != nil {
		stripped = text
	}

	cleaned := strings.Trim(slugSeparator.ReplaceAllString(stripped, "_"), "_")
	if cleaned == "" {
		return DefaultColumnCode
	}
	return strings.ToUpper(cleaned)
}

// columnOrder returns the digit of the first letter-letter-digit run in code,
// or +Inf when there is none
func columnOrder(code string) float64 {
	m := prefixPattern.FindStringSubmatch(code)
	if m == nil {
		return math.Inf(1)
	}
	r := []rune(m[2])[0]
	return float64(digitValue(r))
}

// digitValue returns the numeric value of a Unicode decimal digit.
// Nd characters are laid out in contiguous runs starting at zero.
func digitValue(r rune) int {
	start := r
	for start > 0 && unicode.Is(unicode.Nd, start-1) {
		start--
	}
	return int(r-start) % 10
}

// SortColumns orders a family's codes: MISC lexicographically, every other
// family by column digit with ties broken by code
func SortColumns(family string, codes []string) []string {
	sorted := make([]string, len(codes))
	copy(sorted, codes)

	if family == domain.MiscFamily {
		sort.Strings(sorted)
		return sorted
	}

	sort.Slice(sorted, func(i, j int) bool {
		oi, oj := columnOrder(sorted[i]), columnOrder(sorted[j])
		if oi != oj {
			return oi < oj
		}
		return sorted[i] < sorted[j]
	})
	return sorted
}
