package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all udted MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	if h == nil {
		h = NewHandlerSet(nil)
	}

	// Tool 1: tree_edit_distance - one sentence pair
	s.AddTool(mcp.NewTool("tree_edit_distance",
		mcp.WithDescription("Tree edit distance between two Universal Dependencies parses, with the optimal node alignment on request"),
		mcp.WithString("source",
			mcp.Description("Path to the first CoNLL-U file")),
		mcp.WithString("target",
			mcp.Description("Path to the second CoNLL-U file")),
		mcp.WithString("source_content",
			mcp.Description("Inline CoNLL-U for the first side, instead of source")),
		mcp.WithString("target_content",
			mcp.Description("Inline CoNLL-U for the second side, instead of target")),
		mcp.WithString("source_id",
			mcp.Description("sent_id of the sentence to take from the first side")),
		mcp.WithString("target_id",
			mcp.Description("sent_id of the sentence to take from the second side")),
		mcp.WithNumber("source_index",
			mcp.Description("Zero-based sentence position on the first side when no id is given (default: 0)")),
		mcp.WithNumber("target_index",
			mcp.Description("Zero-based sentence position on the second side when no id is given (default: 0)")),
		mcp.WithBoolean("deprel",
			mcp.Description("Relabeling is free when dependency relations agree (default: false)")),
		mcp.WithBoolean("upos",
			mcp.Description("Relabeling is free when UPOS tags agree (default: false)")),
		mcp.WithBoolean("alignment",
			mcp.Description("Include the optimal node alignment (default: false)")),
		mcp.WithString("algorithm",
			mcp.Enum("auto", "astar", "dp"),
			mcp.Description("Search algorithm (default: auto)")),
		mcp.WithNumber("max_expanded",
			mcp.Description("Maximum search states expanded, 0 = unlimited")),
		mcp.WithNumber("timeout_seconds",
			mcp.Description("Time limit in seconds, 0 = unlimited")),
	), h.HandleTreeEditDistance)

	// Tool 2: corpus_distance - parallel corpora
	s.AddTool(mcp.NewTool("corpus_distance",
		mcp.WithDescription("Mean tree edit distance between two parallel CoNLL-U corpora, compared sentence by sentence"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Path or glob pattern of the first corpus")),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Path or glob pattern of the second corpus")),
		mcp.WithBoolean("deprel",
			mcp.Description("Relabeling is free when dependency relations agree (default: false)")),
		mcp.WithBoolean("upos",
			mcp.Description("Relabeling is free when UPOS tags agree (default: false)")),
		mcp.WithString("algorithm",
			mcp.Enum("auto", "astar", "dp"),
			mcp.Description("Search algorithm (default: auto)")),
		mcp.WithNumber("max_expanded",
			mcp.Description("Maximum search states expanded per pair, 0 = unlimited")),
		mcp.WithNumber("timeout_seconds",
			mcp.Description("Time limit per pair in seconds, 0 = unlimited")),
		mcp.WithNumber("workers",
			mcp.Description("Parallel workers, 0 = number of CPUs")),
		mcp.WithString("output_mode",
			mcp.Enum("summary", "full"),
			mcp.Description("summary: totals and failures only; full: every pair (default: summary)")),
	), h.HandleCorpusDistance)
}
