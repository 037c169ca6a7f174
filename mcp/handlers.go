package mcp

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/textdup/textdup/app"
	"github.com/textdup/textdup/domain"
	"github.com/textdup/textdup/internal/analyzer"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct{}

// NewHandlerSet constructs a handler set.
func NewHandlerSet() *HandlerSet {
	return &HandlerSet{}
}

// HandleFindDuplicates handles the find_duplicates tool
func (h *HandlerSet) HandleFindDuplicates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	threshold := domain.DefaultSimilarityThreshold
	if t, ok := args["threshold"].(float64); ok {
		threshold = t
	}
	recursive := true
	if r, ok := args["recursive"].(bool); ok {
		recursive = r
	}

	req := &domain.DedupRequest{
		Paths:     []string{path},
		Recursive: recursive,
		Threshold: threshold,
	}

	// Progress output would corrupt the stdio JSON-RPC stream.
	useCase := app.NewDedupUseCase(nil)
	response, err := useCase.Detect(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("duplicate detection failed: %v", err)), nil
	}

	return jsonResult(response)
}

// HandleFindSimilar handles the find_similar tool
func (h *HandlerSet) HandleFindSimilar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return mcp.NewToolResultError("query parameter is required and must be a non-empty string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	req := &domain.QueryRequest{
		QueryText: query,
		DedupRequest: domain.DedupRequest{
			Paths:     []string{path},
			Recursive: true,
			Threshold: domain.DefaultSimilarityThreshold,
		},
	}

	useCase := app.NewDedupUseCase(nil)
	response, err := useCase.ExecuteQuery(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("similarity query failed: %v", err)), nil
	}

	return jsonResult(response)
}

// HandleComputeSignature handles the compute_signature tool
func (h *HandlerSet) HandleComputeSignature(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	text, ok := args["text"].(string)
	if !ok {
		return mcp.NewToolResultError("text parameter is required and must be a string"), nil
	}

	var seed uint64
	if s, ok := args["seed"].(float64); ok {
		seed = uint64(s)
	}

	engine, err := analyzer.NewEngine(analyzer.Options{Seed: &seed})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("engine configuration failed: %v", err)), nil
	}

	sig := engine.Config().ComputeSignature(text)
	result := map[string]interface{}{
		"signature_size": len(sig),
		"signature_hex":  hex.EncodeToString(sig.Bytes()),
		"zero":           sig.IsZero(),
	}
	return jsonResult(result)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
