package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all textdup MCP tools with the server
func RegisterTools(s *server.MCPServer) {
	h := NewHandlerSet()

	// Tool 1: find_duplicates - near-duplicate pair detection
	s.AddTool(mcp.NewTool("find_duplicates",
		mcp.WithDescription("Find near-duplicate text files using MinHash signatures and LSH candidate retrieval"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to text files (file or directory) to scan")),
		mcp.WithNumber("threshold",
			mcp.Description("Minimum similarity threshold 0.0-1.0 (default: 0.4)")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively scan directories (default: true)")),
	), h.HandleFindDuplicates)

	// Tool 2: find_similar - rank files by similarity to a query text
	s.AddTool(mcp.NewTool("find_similar",
		mcp.WithDescription("Rank indexed text files by MinHash similarity to a query text"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to text files (file or directory) to index")),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Query text to score files against")),
	), h.HandleFindSimilar)

	// Tool 3: compute_signature - one document's MinHash signature
	s.AddTool(mcp.NewTool("compute_signature",
		mcp.WithDescription("Compute the MinHash signature of a text, hex encoded, with a fixed seed"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to fingerprint")),
		mcp.WithNumber("seed",
			mcp.Description("Coefficient seed for reproducible signatures (default: 0)")),
	), h.HandleComputeSignature)
}
