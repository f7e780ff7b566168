package store

// Canonical record field names used by filters and projections.
const (
	FieldID          = "id"
	FieldURI         = "uri"
	FieldContent     = "content"
	FieldTitle       = "title"
	FieldContextType = "context_type"
	FieldScore       = "_score"
)

// Record is a single stored document. The named fields cover the
// adapter's own schema; Fields carries any extra caller-supplied
// attributes and is preserved through update merges.
type Record struct {
	ID          string         `json:"id"`
	URI         string         `json:"uri,omitempty"`
	Content     string         `json:"content,omitempty"`
	Title       string         `json:"title,omitempty"`
	ContextType string         `json:"context_type,omitempty"`
	Score       float64        `json:"_score,omitempty"`
	Fields      map[string]any `json:"fields,omitempty"`
}

// FieldValue resolves a field by name, checking the named fields first
// and the extra Fields map second.
func (r Record) FieldValue(name string) (any, bool) {
	switch name {
	case FieldID:
		return r.ID, true
	case FieldURI:
		return r.URI, true
	case FieldContent:
		return r.Content, true
	case FieldTitle:
		return r.Title, true
	case FieldContextType:
		return r.ContextType, true
	case FieldScore:
		return r.Score, true
	}
	if r.Fields != nil {
		if v, ok := r.Fields[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Merge overlays upd on r: non-empty fields of upd replace the
// corresponding fields of r, extra Fields are merged key-wise, and the
// record ID is always preserved from r. Used by update, which replaces
// a record wholesale from the merged result.
func (r Record) Merge(upd Record) Record {
	out := r
	if upd.URI != "" {
		out.URI = upd.URI
	}
	if upd.Content != "" {
		out.Content = upd.Content
	}
	if upd.Title != "" {
		out.Title = upd.Title
	}
	if upd.ContextType != "" {
		out.ContextType = upd.ContextType
	}
	if len(upd.Fields) > 0 {
		merged := make(map[string]any, len(r.Fields)+len(upd.Fields))
		for k, v := range r.Fields {
			merged[k] = v
		}
		for k, v := range upd.Fields {
			merged[k] = v
		}
		out.Fields = merged
	}
	return out
}

// Project returns a copy of r restricted to the named fields. The ID is
// always retained, as is the score. A nil or empty field list returns r
// unchanged.
func (r Record) Project(fields []string) Record {
	if len(fields) == 0 {
		return r
	}
	keep := make(map[string]bool, len(fields))
	for _, f := range fields {
		keep[f] = true
	}

	out := Record{ID: r.ID, Score: r.Score}
	if keep[FieldURI] {
		out.URI = r.URI
	}
	if keep[FieldContent] {
		out.Content = r.Content
	}
	if keep[FieldTitle] {
		out.Title = r.Title
	}
	if keep[FieldContextType] {
		out.ContextType = r.ContextType
	}
	for k, v := range r.Fields {
		if keep[k] {
			if out.Fields == nil {
				out.Fields = make(map[string]any)
			}
			out.Fields[k] = v
		}
	}
	return out
}
