package naming

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"unicode/utf8"
)

// DefaultPattern is the standard source-name layout.
const DefaultPattern = "{tier}-{context_type}-{uri_hash}-{title}-ACTIVE"

// Delimiter separates the fields of an encoded source name.
const Delimiter = "-"

// StatusActive is the status flag written by DefaultPattern.
const StatusActive = "ACTIVE"

// MaxTitleLen caps the title portion of a source name, in runes.
const MaxTitleLen = 50

// ErrMissingTierPlaceholder reports a pattern without the {tier} field.
var ErrMissingTierPlaceholder = errors.New("source naming pattern must include {tier} placeholder")

// Parts holds the fields of a decoded source name. When a name does not
// split into at least five fields, Raw carries the original string and
// every other field is empty.
type Parts struct {
	Tier        Tier
	ContextType string
	URIHash     string
	Title       string
	Status      string
	Raw         string
}

// Pattern formats source names from a placeholder template.
type Pattern struct {
	template string
}

// NewPattern validates and returns a Pattern. The template must contain
// the {tier} placeholder; the remaining placeholders are optional.
func NewPattern(template string) (Pattern, error) {
	if template == "" {
		template = DefaultPattern
	}
	if !strings.Contains(template, "{tier}") {
		return Pattern{}, ErrMissingTierPlaceholder
	}
	return Pattern{template: template}, nil
}

// String returns the underlying template.
func (p Pattern) String() string { return p.template }

// Format renders a source name from parts. The title is truncated to
// MaxTitleLen runes and an empty status defaults to StatusActive.
func (p Pattern) Format(parts Parts) string {
	title := parts.Title
	if utf8.RuneCountInString(title) > MaxTitleLen {
		runes := []rune(title)
		title = string(runes[:MaxTitleLen])
	}
	status := parts.Status
	if status == "" {
		status = StatusActive
	}
	r := strings.NewReplacer(
		"{tier}", string(parts.Tier),
		"{context_type}", parts.ContextType,
		"{uri_hash}", parts.URIHash,
		"{title}", title,
		"{status}", status,
	)
	return r.Replace(p.template)
}

// Parse decodes a source name produced by the default layout. Names with
// fewer than five delimited fields are treated as opaque and returned in
// Raw. Titles containing the delimiter are rejoined from the middle
// fields, so decode(encode(x)) round-trips for any title that leaves the
// outer four fields intact.
func Parse(name string) Parts {
	fields := strings.Split(name, Delimiter)
	if len(fields) < 5 {
		return Parts{Raw: name}
	}
	return Parts{
		Tier:        Tier(fields[0]),
		ContextType: fields[1],
		URIHash:     fields[2],
		Title:       strings.Join(fields[3:len(fields)-1], Delimiter),
		Status:      fields[len(fields)-1],
	}
}

// URIHash returns the first 8 hex characters of the SHA-256 of uri.
func URIHash(uri string) string {
	sum := sha256.Sum256([]byte(uri))
	return hex.EncodeToString(sum[:])[:8]
}

// TitleFromURI derives a display title from a URI: the last path
// segment when the URI contains a slash, otherwise the URI itself.
func TitleFromURI(uri string) string {
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
