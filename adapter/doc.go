// Package adapter implements the store.Backend contract on top of the
// notebook service.
//
// Collections map 1:1 to notebooks through the configured mapping, and
// records map 1:1 to sources named by the naming codec. The service has
// no update primitive and no filterable source listing, so the adapter
// mirrors successfully written records into a local cache and answers
// get, exists, filter, scroll, and count from it. Update is
// delete-then-reinsert and therefore not atomic; see
// store.UpdateResult.
//
// Error policy: configuration problems fail construction; insert
// propagates failures because callers need the created ID; most other
// operational failures are logged and converted to a negative or empty
// result, matching the storage contract this adapter emulates.
package adapter
