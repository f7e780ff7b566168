// Package notebooklm is the MCP client for the external semantic
// notebook service.
//
// The service runs out of process and exposes coarse notebook
// operations as MCP tools: list/create/delete/describe notebook, add a
// text source, delete a source, and a natural-language query over a
// notebook's sources. Client wraps an MCP session over any supported
// transport (streamable HTTP, SSE, stdio, or a spawned subprocess) and
// applies a fixed per-operation-kind timeout to every call. Exceeding
// the timeout is a failure; there are no retries.
package notebooklm
