// Package journal pulls date and secret code tokens out of free-form journal text.
//
// Both scans are pure functions of their input, never fail, and keep duplicates
// in order of appearance.
package journal

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// SecretCodePrefix starts every secret code
const SecretCodePrefix = "AZMAR-"

var (
	// Day 30 and 31 are accepted for every month.
	datePattern = regexp.MustCompile(`(0[1-9]|1[0-2])/(0[1-9]|[12][0-9]|3[01])/([12][0-9]{3})`)

	// Unanchored at both ends: "xAZMAR-1234" yields "AZMAR-123".
	codePattern = regexp.MustCompile(regexp.QuoteMeta(SecretCodePrefix) + `[0-9]{3}`)
)

// Token is one match and its byte offset in the scanned text
type Token struct {
	Value  string `json:"value"`
	Offset int    `json:"offset"`
}

// Extraction holds both token lists for one text
type Extraction struct {
	Dates []string `json:"dates"`
	Codes []string `json:"codes"`
}

// ExtractJournalDates returns every MM/DD/YYYY date standing alone as a word
func ExtractJournalDates(text string) []string {
	return values(FindDates(text))
}

// ExtractSecretCodes returns every AZMAR-XXX code, wherever it appears
func ExtractSecretCodes(text string) []string {
	return values(FindSecretCodes(text))
}

// Extract runs both scans
func Extract(text string) Extraction {
	return Extraction{
		Dates: ExtractJournalDates(text),
		Codes: ExtractSecretCodes(text),
	}
}

// FindDates scans left to right for non-overlapping dates bounded by non-word
// characters (or the ends of text) on both sides.
func FindDates(text string) []Token {
	tokens := []Token{}
	for pos := 0; pos < len(text); {
		loc := datePattern.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if !atWordBoundary(text, start, end) {
			// the match begins with an ASCII digit, so start+1 is a rune boundary
			pos = start + 1
			continue
		}
		tokens = append(tokens, Token{Value: text[start:end], Offset: start})
		pos = end
	}
	return tokens
}

// FindSecretCodes returns every code with its offset
func FindSecretCodes(text string) []Token {
	locs := codePattern.FindAllStringIndex(text, -1)
	tokens := make([]Token, 0, len(locs))
	for _, loc := range locs {
		tokens = append(tokens, Token{Value: text[loc[0]:loc[1]], Offset: loc[0]})
	}
	return tokens
}

// atWordBoundary reports whether text[start:end] is not glued to a word character
func atWordBoundary(text string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func values(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Value
	}
	return out
}
