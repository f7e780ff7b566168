package notebooklm

// Notebook is a summary entry from notebook_list.
type Notebook struct {
	ID          string `json:"notebook_id"`
	Title       string `json:"title"`
	SourceCount int    `json:"source_count"`
}

// SourceInfo identifies a source within a notebook.
type SourceInfo struct {
	ID    string `json:"source_id"`
	Title string `json:"title"`
}

// NotebookInfo is the notebook_describe result.
type NotebookInfo struct {
	ID          string       `json:"notebook_id"`
	Title       string       `json:"title"`
	SourceCount int          `json:"source_count"`
	Sources     []SourceInfo `json:"sources"`
}

// SourceHandle is returned when a text source is added; deletions use
// its ID.
type SourceHandle struct {
	ID    string `json:"source_id"`
	Title string `json:"title"`
}

// QuerySource is one grounding source of a query answer, in the order
// the service ranked it.
type QuerySource struct {
	SourceID string `json:"source_id"`
	Title    string `json:"title"`
	Snippet  string `json:"snippet"`
}

// QueryResult is the notebook_query result.
type QueryResult struct {
	Answer  string        `json:"response"`
	Sources []QuerySource `json:"sources"`
}

// envelope carries the status fields every tool result includes.
type envelope struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}
