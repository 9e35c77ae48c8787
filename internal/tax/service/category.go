package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	taxdomain "github.com/smallbiznis/khata/internal/tax/domain"
)

// SuggestCategory returns every table entry whose keywords appear in the
// description, or whose own description contains it. Table order is kept.
func SuggestCategory(description string) []taxdomain.Category {
	query := strings.ToLower(strings.TrimSpace(description))
	out := make([]taxdomain.Category, 0)
	if query == "" {
		return out
	}

	for _, category := range taxdomain.Categories {
		if categoryMatches(category, query) {
			out = append(out, category)
		}
	}
	return out
}

func categoryMatches(category taxdomain.Category, query string) bool {
	if strings.Contains(strings.ToLower(category.Description), query) {
		return true
	}
	for _, keyword := range category.Keywords {
		if containsKeyword(query, keyword) {
			return true
		}
	}
	return false
}

// containsKeyword finds keyword in text starting at a word boundary. Plain
// keywords must also end at one, so "car" does not match "card".
func containsKeyword(text, keyword string) bool {
	stem, prefix := strings.CutSuffix(keyword, "*")
	if stem == "" {
		return false
	}

	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], stem)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(stem)
		if wordBoundaryBefore(text, start) && (prefix || wordBoundaryAfter(text, end)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

func wordBoundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func wordBoundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
