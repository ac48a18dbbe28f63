package perplexity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func fakeCompletion(t *testing.T, content string, citations []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "sonar" {
			t.Errorf("model = %q, want sonar", req.Model)
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
			"citations": citations,
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestSearchAttributesCitations(t *testing.T) {
	content := "Acme posted record growth this quarter[1]. Competitors are struggling to keep pace[2]. Acme also expanded into Europe[1]."
	ts := fakeCompletion(t, content, []string{
		"https://news.example/acme-growth",
		"https://analysis.example/competitors",
	})
	defer ts.Close()

	c := NewClient("test-key", ts.URL, "sonar", 600)
	sources, err := c.Search(context.Background(), "how is Acme doing", 25)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("sources = %d, want 2", len(sources))
	}

	if sources[0].SourceID != "https://news.example/acme-growth" {
		t.Errorf("sources[0].SourceID = %q", sources[0].SourceID)
	}
	if !strings.Contains(sources[0].RawText, "record growth") ||
		!strings.Contains(sources[0].RawText, "expanded into Europe") {
		t.Errorf("sources[0].RawText = %q, missing attributed sentences", sources[0].RawText)
	}
	if strings.Contains(sources[0].RawText, "Competitors") {
		t.Errorf("sources[0].RawText = %q, carries another citation's sentence", sources[0].RawText)
	}
	if !strings.Contains(sources[1].RawText, "struggling to keep pace") {
		t.Errorf("sources[1].RawText = %q", sources[1].RawText)
	}
}

func TestSearchNoMarkersFullText(t *testing.T) {
	content := "Acme is doing well overall with steady results"
	ts := fakeCompletion(t, content, []string{
		"https://a.example/1",
		"https://b.example/2",
	})
	defer ts.Close()

	c := NewClient("test-key", ts.URL, "sonar", 600)
	sources, err := c.Search(context.Background(), "prompt", 25)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("sources = %d, want 2", len(sources))
	}
	for _, s := range sources {
		if s.RawText != content {
			t.Errorf("RawText = %q, want full answer", s.RawText)
		}
	}
}

func TestSearchDropsMalformedCitations(t *testing.T) {
	ts := fakeCompletion(t, "Something about Acme[1][2].", []string{
		"not-a-url",
		"https://valid.example/page",
	})
	defer ts.Close()

	c := NewClient("test-key", ts.URL, "sonar", 600)
	sources, err := c.Search(context.Background(), "prompt", 25)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("sources = %d, want 1", len(sources))
	}
	if sources[0].SourceID != "https://valid.example/page" {
		t.Errorf("SourceID = %q", sources[0].SourceID)
	}
}

func TestSearchRespectsMaxSources(t *testing.T) {
	ts := fakeCompletion(t, "Answer without markers", []string{
		"https://a.example/1",
		"https://b.example/2",
		"https://c.example/3",
	})
	defer ts.Close()

	c := NewClient("test-key", ts.URL, "sonar", 600)
	sources, err := c.Search(context.Background(), "prompt", 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(sources) != 2 {
		t.Errorf("sources = %d, want 2", len(sources))
	}
}

func TestSearchUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := NewClient("test-key", ts.URL, "sonar", 600)
	if _, err := c.Search(context.Background(), "prompt", 25); err == nil {
		t.Fatal("Search() returned nil error for non-200 response")
	}
}

func TestAttributeCitations(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		citations int
		want      []string
	}{
		{
			"no citations",
			"anything",
			0,
			[]string{},
		},
		{
			"out of range markers ignored",
			"Claim one[1]. Claim nine[9].",
			1,
			[]string{"Claim one[1]."},
		},
		{
			"shared sentence",
			"Both sources agree[1][2].",
			2,
			[]string{"Both sources agree[1][2].", "Both sources agree[1][2]."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := attributeCitations(tt.content, tt.citations)
			if len(got) != len(tt.want) {
				t.Fatalf("segments = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
