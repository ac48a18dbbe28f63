// Package validation provides input validation for prompts and brand terms.
package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxBrandLength is the maximum accepted length for a brand term.
const MaxBrandLength = 100

// brandPatterns match common phrasings that name a brand inside a prompt.
// Applied against the lowercased prompt; first capture wins.
var brandPatterns = []*regexp.Regexp{
	regexp.MustCompile(`analyze (?:the )?([a-z][a-z ]*?)(?: is doing| performing| visibility| brand| company|\.|,|\?|$)`),
	regexp.MustCompile(`([a-z][a-z ]*?) brand\b`),
	regexp.MustCompile(`([a-z][a-z ]*?) company\b`),
	regexp.MustCompile(`([a-z][a-z ]*?) market presence`),
	regexp.MustCompile(`how is ([a-z][a-z ]*?) doing`),
	regexp.MustCompile(`([a-z][a-z ]*?) performance\b`),
	regexp.MustCompile(`analyze ([a-z][a-z ]*?) in\b`),
}

// brandStopWords are words never treated as a brand name on their own.
var brandStopWords = map[string]bool{
	"analyze": true, "brand": true, "company": true, "visibility": true,
	"market": true, "presence": true, "performance": true,
	"how": true, "what": true, "the": true, "about": true,
}

// ValidatePrompt checks that a prompt is non-empty and within the length bound.
// Returns false and a message if validation fails.
func ValidatePrompt(prompt string, maxLength int) (bool, string) {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return false, "prompt is required"
	}
	if len(prompt) > maxLength {
		return false, "prompt exceeds maximum length"
	}
	return true, ""
}

// ValidateBrand checks that a brand term is non-empty and within bounds.
func ValidateBrand(brand string) (bool, string) {
	trimmed := strings.TrimSpace(brand)
	if trimmed == "" {
		return false, "brand term is required"
	}
	if len(trimmed) > MaxBrandLength {
		return false, "brand term exceeds maximum length"
	}
	return true, ""
}

// ExtractBrandName derives the brand term from an analysis prompt.
// Tries known phrasings first, then adjacent capitalized words, and finally
// falls back to the leading words of the prompt. Never returns empty for a
// non-empty prompt.
func ExtractBrandName(prompt string) string {
	lower := strings.ToLower(prompt)

	for _, pattern := range brandPatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		candidate := titleCase(strings.TrimSpace(match[1]))
		if len(candidate) > 2 && !brandStopWords[strings.ToLower(candidate)] {
			return candidate
		}
	}

	// Look for runs of capitalized words that look like a brand name.
	words := strings.Fields(prompt)
	for i, word := range words {
		if !isBrandWord(word) {
			continue
		}
		parts := []string{word}
		for j := i + 1; j < len(words) && j < i+3; j++ {
			if !isBrandWord(words[j]) {
				break
			}
			parts = append(parts, words[j])
		}
		return strings.Join(parts, " ")
	}

	// Fallback: leading words of the prompt, bounded.
	fallback := strings.Join(words[:min(3, len(words))], " ")
	if len(fallback) > 30 {
		fallback = fallback[:30]
	}
	return fallback
}

func isBrandWord(word string) bool {
	runes := []rune(word)
	if len(runes) <= 2 || !unicode.IsUpper(runes[0]) {
		return false
	}
	return !brandStopWords[strings.ToLower(word)]
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
