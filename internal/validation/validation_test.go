package validation

import (
	"strings"
	"testing"
)

func TestValidatePrompt(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		maxLen int
		wantOK bool
	}{
		{"valid", "how is Acme doing", 500, true},
		{"empty", "", 500, false},
		{"whitespace only", "   \t  ", 500, false},
		{"at limit", strings.Repeat("a", 500), 500, true},
		{"over limit", strings.Repeat("a", 501), 500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := ValidatePrompt(tt.prompt, tt.maxLen)
			if ok != tt.wantOK {
				t.Errorf("ValidatePrompt() = %v, want %v", ok, tt.wantOK)
			}
			if !ok && msg == "" {
				t.Error("rejection carries no message")
			}
		})
	}
}

func TestValidateBrand(t *testing.T) {
	tests := []struct {
		name   string
		brand  string
		wantOK bool
	}{
		{"valid", "Acme", true},
		{"empty", "", false},
		{"whitespace only", "  ", false},
		{"at limit", strings.Repeat("b", MaxBrandLength), true},
		{"over limit", strings.Repeat("b", MaxBrandLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ok, _ := ValidateBrand(tt.brand); ok != tt.wantOK {
				t.Errorf("ValidateBrand(%q) = %v, want %v", tt.brand, ok, tt.wantOK)
			}
		})
	}
}

func TestExtractBrandName(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"how is doing phrasing", "How is Tesla doing in the market?", "Tesla"},
		{"analyze phrasing", "Analyze Acme", "Acme"},
		{"brand suffix", "Nike brand visibility this quarter", "Nike"},
		{"the article stripped", "analyze the coca cola company", "Coca Cola"},
		{"capitalized run", "what does the press say about SpaceX", "SpaceX"},
		{"multi-word capitalized run", "latest coverage of Acme Corp reputation", "Acme Corp"},
		{"fallback to leading words", "how is it going", "how is it"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractBrandName(tt.prompt); got != tt.want {
				t.Errorf("ExtractBrandName(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestExtractBrandNameNeverEmpty(t *testing.T) {
	prompts := []string{
		"x",
		"how is it going",
		"brand",
		strings.Repeat("word ", 40),
	}
	for _, p := range prompts {
		if got := ExtractBrandName(p); got == "" {
			t.Errorf("ExtractBrandName(%q) returned empty", p)
		}
	}
}
