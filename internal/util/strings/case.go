package strings

import (
	"strings"
	"unicode"
)

// wordSeparators are the characters that split a category into words.
const wordSeparators = "_-. "

// ToPascalCase joins the separator-delimited words of s, upper-casing the
// first rune of each word and lower-casing the rest
// (enzyme_substrate -> EnzymeSubstrate, PTM-site -> PtmSite).
// Empty words produced by repeated separators are dropped.
func ToPascalCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(wordSeparators, r)
	})

	var result strings.Builder
	for _, word := range words {
		result.WriteString(Capitalize(word))
	}
	return result.String()
}

// Capitalize upper-cases the first rune of s and lower-cases the remainder.
func Capitalize(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if i == 0 {
			runes[i] = unicode.ToUpper(r)
		} else {
			runes[i] = unicode.ToLower(r)
		}
	}
	return string(runes)
}

// ToSnakeCase converts CamelCase to snake_case
// Handles acronyms properly (HTTPRequest -> http_request)
func ToSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				// Add underscore before uppercase letter if:
				// 1. Previous char is lowercase
				// 2. Next char is lowercase (for acronyms like PTMSite -> ptm_site)
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					result.WriteRune('_')
				} else if i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
					result.WriteRune('_')
				}
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
