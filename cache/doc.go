// Package cache provides the adapter's local record cache.
//
// The notebook service has no update primitive and no bulk source
// listing usable for filtering, so the adapter mirrors every record it
// successfully writes into an in-process cache and answers filter,
// scroll, count, and existence checks from it. The cache is the only
// source of truth for those operations and is lost on process restart.
//
// Memory is the plain map-backed implementation. Indexed layers a
// mem-only bleve index over it for keyword search across cached record
// titles and content. Both are explicitly owned, injectable objects:
// the adapter takes a Store, so a persistent implementation can be
// swapped in without touching adapter logic.
package cache
