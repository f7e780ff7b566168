// Package naming implements the source-name codec and content tiering
// policy used to store records in a semantic notebook.
//
// A record is persisted as a notebook source whose title carries the
// record's metadata in a single delimited string:
//
//	{tier}-{context_type}-{uri_hash}-{title}-{status}
//
// Tier classifies content length into three buckets (L0, L1, L2) from
// configured word-count thresholds. The URI hash is a truncated SHA-256
// of the record URI, and the title defaults to the last path segment of
// the URI. The codec is deterministic: Format followed by Parse recovers
// the original fields for any title that does not itself break the
// five-part split.
package naming
