// Package store defines the generic document-collection storage contract
// implemented by the notebook adapter.
//
// A Backend manages named collections of records. Records carry a URI,
// textual content, a context classification, and arbitrary extra fields.
// The contract includes a vector-style search signature for interface
// compatibility; backends that have no embedding concept ignore the
// vector parameters and derive the query from the filter payload
// instead.
//
// Filters arrive from callers as dynamic condition trees (maps with an
// operator, a field, and nested conditions). ParseCondition converts
// them to the typed Condition variants in this package, which evaluate
// recursively against a record.
package store
