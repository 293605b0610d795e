package extractor

import (
	"strings"
	"unicode"
)

// ReceiptText is the normalized form of raw OCR output that strategies
// match against. OCR output arrives with inconsistent whitespace, merged
// tokens, and mixed scripts; strategies never see the raw string directly.
type ReceiptText struct {
	// Lines holds the trimmed, non-empty lines in original order.
	Lines []string

	// Joined is the whole text collapsed to single spaces on one line.
	Joined string
}

// NormalizeText prepares raw OCR output for field extraction.
func NormalizeText(raw string) *ReceiptText {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = collapseWhitespace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return &ReceiptText{
		Lines:  lines,
		Joined: strings.Join(lines, " "),
	}
}

// HasLatinLetters reports whether the text contains any ASCII letters.
// Receipts rendered in a non-Latin script carry no literal English labels,
// so label-anchored extraction is pointless for them.
func (t *ReceiptText) HasLatinLetters() bool {
	for _, r := range t.Joined {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// collapseWhitespace trims a line and squeezes interior whitespace runs to
// single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
