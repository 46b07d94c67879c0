package match

import (
	"strings"
	"unicode"
)

// Normalize folds a property name for fuzzy comparison: CamelCase and
// separators are flattened and the result is lower-cased.
//
//	"FirstName"  -> "firstname"
//	"first_name" -> "firstname"
//	"HTTPStatus" -> "httpstatus"
func Normalize(s string) string {
	return strings.Join(Tokenize(s), "")
}

// Tokenize splits an identifier into lower-case words.
//
//	"OrderID"         -> ["order", "id"]
//	"getHTTPResponse" -> ["get", "http", "response"]
//	"price_cents"     -> ["price", "cents"]
func Tokenize(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsWord reports whether runes[i] begins a new CamelCase word: a lower to
// upper transition, or the last capital of an acronym followed by lower case.
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
