package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const utf8BOM = "\uFEFF"

// Complaint text arrives from web forms and mobile keyboards full of
// typographic punctuation. The keyword taxonomy and the classifiers work on
// plain ASCII punctuation, so normalize before analysis.
var charReplacementMap = map[string]string{
	"‘": "'", "’": "'", "“": "\"", "”": "\"",
	"–": "-", "—": "--", "…": "...", " ": " ",
	"": "'", "": "'", "": "\"", "": "\"",
	"": "-", "": "--",
}

// NormalizeText cleans raw complaint text: strips the BOM, repairs invalid
// UTF-8, maps typographic punctuation to ASCII and drops control characters.
// The result is trimmed; empty input stays empty.
func NormalizeText(text string) string {
	text = strings.TrimPrefix(text, utf8BOM)

	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}

	for bad, good := range charReplacementMap {
		text = strings.ReplaceAll(text, bad, good)
	}

	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)

	return strings.TrimSpace(text)
}
