package naming

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPatternFormat(t *testing.T) {
	p, err := NewPattern("")
	if err != nil {
		t.Fatalf("NewPattern failed: %v", err)
	}

	name := p.Format(Parts{
		Tier:        TierL1,
		ContextType: "resource",
		URIHash:     "abc12345",
		Title:       "my-doc",
	})

	want := "L1-resource-abc12345-my-doc-ACTIVE"
	if name != want {
		t.Errorf("Format = %q, want %q", name, want)
	}
}

func TestPatternRequiresTier(t *testing.T) {
	if _, err := NewPattern("no-tier-placeholder"); err == nil {
		t.Fatal("expected error for pattern without {tier}")
	}
}

func TestPatternTruncatesTitle(t *testing.T) {
	p, _ := NewPattern("")
	long := strings.Repeat("x", 200)

	name := p.Format(Parts{Tier: TierL0, ContextType: "resource", URIHash: "deadbeef", Title: long})

	parsed := Parse(name)
	if len(parsed.Title) != MaxTitleLen {
		t.Errorf("expected title truncated to %d, got %d", MaxTitleLen, len(parsed.Title))
	}
}

func TestPatternTruncatesTitleOnRuneBoundary(t *testing.T) {
	p, _ := NewPattern("")
	long := strings.Repeat("ü", 200)

	name := p.Format(Parts{Tier: TierL0, ContextType: "resource", URIHash: "deadbeef", Title: long})
	if !utf8.ValidString(name) {
		t.Fatalf("formatted name is not valid UTF-8: %q", name)
	}

	parsed := Parse(name)
	if got := utf8.RuneCountInString(parsed.Title); got != MaxTitleLen {
		t.Errorf("expected title truncated to %d runes, got %d", MaxTitleLen, got)
	}
	if parsed.Title != strings.Repeat("ü", MaxTitleLen) {
		t.Errorf("truncation mangled the title: %q", parsed.Title)
	}
}

func TestParseRoundTrip(t *testing.T) {
	p, _ := NewPattern("")

	tests := []struct {
		name  string
		parts Parts
	}{
		{"plain title", Parts{Tier: TierL0, ContextType: "resource", URIHash: "abc12345", Title: "notes"}},
		{"title with delimiter", Parts{Tier: TierL2, ContextType: "memory", URIHash: "00ff00ff", Title: "a-b-c"}},
		{"skill context", Parts{Tier: TierL1, ContextType: "skill", URIHash: "12345678", Title: "setup.md"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(p.Format(tt.parts))

			if got.Tier != tt.parts.Tier {
				t.Errorf("tier = %s, want %s", got.Tier, tt.parts.Tier)
			}
			if got.ContextType != tt.parts.ContextType {
				t.Errorf("context type = %s, want %s", got.ContextType, tt.parts.ContextType)
			}
			if got.URIHash != tt.parts.URIHash {
				t.Errorf("uri hash = %s, want %s", got.URIHash, tt.parts.URIHash)
			}
			if got.Title != tt.parts.Title {
				t.Errorf("title = %q, want %q", got.Title, tt.parts.Title)
			}
			if got.Status != StatusActive {
				t.Errorf("status = %q, want %q", got.Status, StatusActive)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	got := Parse("just a plain title")
	if got.Raw != "just a plain title" {
		t.Errorf("expected raw fallback, got %+v", got)
	}
	if got.Tier != "" || got.Title != "" {
		t.Errorf("malformed name should leave structured fields empty, got %+v", got)
	}
}

func TestURIHash(t *testing.T) {
	h := URIHash("viking://docs/a")
	if len(h) != 8 {
		t.Errorf("expected 8-char hash, got %q", h)
	}
	if h != URIHash("viking://docs/a") {
		t.Error("hash should be deterministic")
	}
	if h == URIHash("viking://docs/b") {
		t.Error("distinct URIs should hash differently")
	}
}

func TestTitleFromURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"viking://docs/guide.md", "guide.md"},
		{"plain-name", "plain-name"},
		{"a/b/c", "c"},
	}

	for _, tt := range tests {
		if got := TitleFromURI(tt.uri); got != tt.want {
			t.Errorf("TitleFromURI(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}
