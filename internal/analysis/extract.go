// Package analysis derives sentiment, mention and trust metrics from raw
// source text and aggregates them across sources. All functions are pure:
// no I/O, deterministic for identical input.
package analysis

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"brandpulse/internal/models"
	"brandpulse/internal/validation"
)

// ErrInvalidBrand is returned when the brand term fails validation.
var ErrInvalidBrand = errors.New("invalid brand term")

const (
	// contextRadius bounds how many bytes around a mention are kept as
	// its context snippet.
	contextRadius = 60

	// maxContexts caps the number of snippets retained per source.
	maxContexts = 8
)

// Keyword lists for the lexical sentiment vote.
var (
	positiveWords = []string{
		"good", "great", "excellent", "positive", "successful", "success",
		"leading", "innovative", "strong", "growth", "improve",
	}
	negativeWords = []string{
		"bad", "poor", "negative", "failing", "weak", "declining",
		"decline", "struggling", "problem", "issue", "concern",
	}
)

// Extractor converts one source's raw text into a SourceObservation.
// Domain reputation weights come from the optional YAML config.
type Extractor struct {
	domainWeights map[string]float64
	baseTrust     float64
}

// NewExtractor creates an extractor. domainWeights may be nil, in which
// case every domain gets baseTrust reputation.
func NewExtractor(domainWeights map[string]float64, baseTrust float64) *Extractor {
	return &Extractor{
		domainWeights: domainWeights,
		baseTrust:     clamp01(baseTrust),
	}
}

// Extract derives the per-source metrics for one crawled source.
// Empty source text fails closed: zero mentions, neutral tone, zero score
// and zero trust. An invalid brand term returns ErrInvalidBrand and no
// observation.
func (e *Extractor) Extract(sourceID, sourceText, brand string) (models.SourceObservation, error) {
	if ok, _ := validation.ValidateBrand(brand); !ok {
		return models.SourceObservation{}, ErrInvalidBrand
	}

	obs := models.SourceObservation{
		SourceID:        sourceID,
		SentimentTone:   models.ToneNeutral,
		MentionContexts: []string{},
	}
	if sourceText == "" {
		return obs, nil
	}

	obs.MentionCount, obs.MentionContexts = scanMentions(sourceText, brand)
	obs.SentimentTone, obs.SentimentScore = classifySentiment(sourceText)
	obs.TrustIndicator = e.trustIndicator(sourceID, sourceText, obs.MentionCount)
	return obs, nil
}

// scanMentions counts non-overlapping case-insensitive occurrences of the
// brand term and captures a bounded context snippet per occurrence, in
// discovery order with identical snippets deduplicated.
func scanMentions(text, brand string) (int, []string) {
	pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(strings.TrimSpace(brand)))
	if err != nil {
		return 0, []string{}
	}

	matches := pattern.FindAllStringIndex(text, -1)
	contexts := []string{}
	seen := make(map[string]bool)
	for _, m := range matches {
		if len(contexts) >= maxContexts {
			break
		}
		snippet := contextSnippet(text, m[0], m[1])
		if snippet == "" || seen[snippet] {
			continue
		}
		seen[snippet] = true
		contexts = append(contexts, snippet)
	}
	return len(matches), contexts
}

// contextSnippet returns the text surrounding a mention, trimmed to rune
// boundaries with whitespace collapsed.
func contextSnippet(text string, start, end int) string {
	lo := start - contextRadius
	if lo < 0 {
		lo = 0
	}
	hi := end + contextRadius
	if hi > len(text) {
		hi = len(text)
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return strings.Join(strings.Fields(text[lo:hi]), " ")
}

// classifySentiment maps text to exactly one tone label plus a confidence
// in [0,1] via a keyword vote. The margin between positive and negative
// matches drives the confidence; a tied or empty vote is neutral at 0.5.
func classifySentiment(text string) (string, float64) {
	lower := strings.ToLower(text)

	var positive, negative int
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			negative++
		}
	}

	total := positive + negative
	if total == 0 || positive == negative {
		return models.ToneNeutral, 0.5
	}
	if positive > negative {
		return models.TonePositive, clamp01(0.5 + 0.5*float64(positive-negative)/float64(total))
	}
	return models.ToneNegative, clamp01(0.5 + 0.5*float64(negative-positive)/float64(total))
}

// trustIndicator blends domain reputation, mention density and content
// volume into a credibility signal in [0,1].
func (e *Extractor) trustIndicator(sourceID, text string, mentions int) float64 {
	reputation := e.baseTrust
	if w, ok := e.domainWeights[sourceDomain(sourceID)]; ok {
		reputation = w
	}

	density := float64(mentions) / 4
	if density > 1 {
		density = 1
	}
	volume := float64(len(text)) / 2000
	if volume > 1 {
		volume = 1
	}

	return clamp01(0.5*reputation + 0.3*density + 0.2*volume)
}

// sourceDomain extracts the bare domain from a source identifier, which is
// usually a URL but may be an opaque label.
func sourceDomain(sourceID string) string {
	if u, err := url.Parse(sourceID); err == nil && u.Host != "" {
		return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	}
	return strings.ToLower(sourceID)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
