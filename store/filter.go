package store

import (
	"fmt"
	"reflect"
)

// Condition is a boolean filter evaluated against a record.
// The three variants are a leaf equality test and the two composites.
type Condition interface {
	// Match reports whether the record satisfies the condition.
	Match(rec Record) bool
}

// Equals is a leaf condition: the named field's value must equal one of
// Values. With no field or no values the condition is vacuously true.
type Equals struct {
	Field  string
	Values []any
}

// Match implements Condition.
func (e Equals) Match(rec Record) bool {
	if e.Field == "" || len(e.Values) == 0 {
		return true
	}
	actual, ok := rec.FieldValue(e.Field)
	if !ok {
		return true
	}
	for _, want := range e.Values {
		if equalValue(actual, want) {
			return true
		}
	}
	return false
}

// And is satisfied when every sub-condition matches.
// An empty conjunction is vacuously true.
type And struct {
	Conds []Condition
}

// Match implements Condition.
func (a And) Match(rec Record) bool {
	for _, c := range a.Conds {
		if !c.Match(rec) {
			return false
		}
	}
	return true
}

// Or is satisfied when any sub-condition matches.
// An empty disjunction is vacuously true.
type Or struct {
	Conds []Condition
}

// Match implements Condition.
func (o Or) Match(rec Record) bool {
	if len(o.Conds) == 0 {
		return true
	}
	for _, c := range o.Conds {
		if c.Match(rec) {
			return true
		}
	}
	return false
}

func equalValue(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	// Dynamic payloads can carry uncomparable values (JSON arrays
	// decode to []any), so == is only safe for matching comparable
	// types.
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == tb && ta.Comparable() {
		return a == b
	}
	// Callers routinely mix numeric widths in dynamic payloads.
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

// ParseCondition converts a dynamic filter payload into a typed
// Condition. The payload layout is:
//
//	{"op": "and"|"or", "conds": [ ...nested payloads... ]}
//	{"field": "<name>", "conds": [ ...accepted values... ]}
//
// A nil payload matches everything. Unrecognized operator strings fall
// back to conjunction semantics; callers depend on that.
func ParseCondition(payload map[string]any) Condition {
	if len(payload) == 0 {
		return And{}
	}

	conds, _ := payload["conds"].([]any)

	var nested []Condition
	var leafValues []any
	for _, raw := range conds {
		if m, ok := raw.(map[string]any); ok {
			nested = append(nested, ParseCondition(m))
		} else {
			leafValues = append(leafValues, raw)
		}
	}

	if len(nested) == 0 {
		field, _ := payload["field"].(string)
		return Equals{Field: field, Values: leafValues}
	}

	op, _ := payload["op"].(string)
	switch op {
	case "or":
		return Or{Conds: nested}
	case "and":
		return And{Conds: nested}
	default:
		// Unknown operators behave as "and".
		return And{Conds: nested}
	}
}

// QueryText extracts the free-text query embedded in a search filter
// payload: a top-level "query" key, else the first value of a leaf
// condition whose field is "query". Returns "" when no text is present.
func QueryText(payload map[string]any) string {
	if len(payload) == 0 {
		return ""
	}
	if q, ok := payload["query"].(string); ok && q != "" {
		return q
	}
	conds, _ := payload["conds"].([]any)
	for _, raw := range conds {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if field, _ := m["field"].(string); field != "query" {
			continue
		}
		values, _ := m["conds"].([]any)
		if len(values) > 0 {
			if q, ok := values[0].(string); ok {
				return q
			}
		}
	}
	return ""
}
