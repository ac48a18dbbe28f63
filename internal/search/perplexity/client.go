// Package perplexity implements the search.Searcher contract against the
// Perplexity chat-completions API.
package perplexity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"brandpulse/internal/search"
)

const completionsPath = "/chat/completions"

// Client calls the Perplexity API. Answers from the "sonar" family of
// models carry a citation list plus inline [n] markers referencing it.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Perplexity client with a client-side requests-per-
// minute budget.
func NewClient(apiKey, baseURL, model string, rpm int) *Client {
	if rpm <= 0 {
		rpm = 30
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		client:  http.DefaultClient,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}

// Search implements search.Searcher. One completion call yields the answer
// text and its citations; each citation becomes a source whose raw text is
// the part of the answer attributed to it.
func (c *Client) Search(ctx context.Context, prompt string, maxSources int) ([]search.Source, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var content string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	segments := attributeCitations(content, len(resp.Citations))

	var sources []search.Source
	for i, citation := range resp.Citations {
		if len(sources) >= maxSources {
			break
		}
		// Defensive boundary: a citation that is not an absolute URL is
		// malformed collaborator output and is dropped per-source.
		if u, err := url.Parse(citation); err != nil || !u.IsAbs() {
			continue
		}
		sources = append(sources, search.Source{
			SourceID: citation,
			RawText:  segments[i],
		})
	}
	return sources, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (*chatResponse, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   2000,
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("perplexity returned status %d", res.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}
	return &parsed, nil
}

var citationMarker = regexp.MustCompile(`\[(\d+)\]`)

// attributeCitations splits the answer into sentences and assigns each
// sentence to the citations its [n] markers reference. Returns one text
// segment per citation (1-based markers). When the answer carries no
// markers at all, every citation gets the full answer text.
func attributeCitations(content string, citations int) []string {
	segments := make([]string, citations)
	if citations == 0 {
		return segments
	}

	markers := citationMarker.FindAllStringSubmatch(content, -1)
	if len(markers) == 0 {
		for i := range segments {
			segments[i] = content
		}
		return segments
	}

	var parts [][]string
	for _, sentence := range splitSentences(content) {
		for _, m := range citationMarker.FindAllStringSubmatch(sentence, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil || n < 1 || n > citations {
				continue
			}
			if parts == nil {
				parts = make([][]string, citations)
			}
			parts[n-1] = append(parts[n-1], strings.TrimSpace(sentence))
		}
	}
	for i := range segments {
		if parts != nil {
			segments[i] = strings.Join(parts[i], " ")
		}
	}
	return segments
}

// splitSentences breaks text on sentence-ending punctuation. Rough but
// sufficient for marker attribution.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
