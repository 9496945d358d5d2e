package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/breaklikeafish/UD-TED/domain"
	"github.com/breaklikeafish/UD-TED/internal/config"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies("")
	}
	return &HandlerSet{deps: deps}
}

// HandleTreeEditDistance handles the tree_edit_distance tool
func (h *HandlerSet) HandleTreeEditDistance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	source, err := sentenceSource(args, "source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target, err := sentenceSource(args, "target")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	overrides, explicit := engineOverrides(args)
	if alignment, ok := args["alignment"].(bool); ok {
		overrides.ShowAlignment = alignment
		explicit[config.FlagAlignment] = true
	}

	req := domain.CompareRequest{
		Source:         source,
		Target:         target,
		SourceSentence: sentenceSelector(args, "source"),
		TargetSentence: sentenceSelector(args, "target"),
		OutputWriter:   io.Discard,
		ConfigPath:     h.deps.ConfigPath(),
	}

	useCase, err := h.deps.BuildCompareUseCase(overrides, explicit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create comparison: %v", err)), nil
	}

	result, err := useCase.Execute(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleCorpusDistance handles the corpus_distance tool
func (h *HandlerSet) HandleCorpusDistance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	source, err := corpusPath(args, "source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target, err := corpusPath(args, "target")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	overrides, explicit := engineOverrides(args)
	if workers, ok := args["workers"].(float64); ok {
		overrides.Workers = int(workers)
		explicit[config.FlagWorkers] = true
	}
	overrides.NoProgress = true
	explicit[config.FlagNoProgress] = true

	req := domain.BatchRequest{
		Source:       domain.SentenceSource{Path: source},
		Target:       domain.SentenceSource{Path: target},
		OutputWriter: io.Discard,
		ConfigPath:   h.deps.ConfigPath(),
	}

	useCase, err := h.deps.BuildBatchUseCase(overrides, explicit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create corpus evaluation: %v", err)), nil
	}

	result, err := useCase.Execute(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("corpus evaluation failed: %v", err)), nil
	}

	// Parse output_mode parameter (default: "summary")
	outputMode := "summary"
	if om, ok := args["output_mode"].(string); ok {
		outputMode = om
	}

	var responseData interface{}
	switch outputMode {
	case "full":
		responseData = result
	default: // "summary"
		responseData = formatCorpusSummary(result)
	}

	jsonData, err := json.Marshal(responseData)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// sentenceSource reads "<side>" as a file path or "<side>_content" as
// inline CoNLL-U. Exactly one of them must be given.
func sentenceSource(args map[string]interface{}, side string) (domain.SentenceSource, error) {
	path, hasPath := args[side].(string)
	content, hasContent := args[side+"_content"].(string)
	hasPath = hasPath && path != ""
	hasContent = hasContent && content != ""

	switch {
	case hasPath && hasContent:
		return domain.SentenceSource{}, fmt.Errorf("%s and %s_content are mutually exclusive", side, side)
	case hasContent:
		return domain.SentenceSource{Content: content}, nil
	case hasPath:
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return domain.SentenceSource{}, fmt.Errorf("path does not exist: %s", path)
		}
		return domain.SentenceSource{Path: path}, nil
	default:
		return domain.SentenceSource{}, fmt.Errorf("%s or %s_content parameter is required", side, side)
	}
}

func corpusPath(args map[string]interface{}, side string) (string, error) {
	path, ok := args[side].(string)
	if !ok || path == "" {
		return "", fmt.Errorf("%s parameter is required and must be a string", side)
	}
	return path, nil
}

func sentenceSelector(args map[string]interface{}, side string) domain.SentenceSelector {
	var selector domain.SentenceSelector
	if id, ok := args[side+"_id"].(string); ok {
		selector.ID = id
	}
	if index, ok := args[side+"_index"].(float64); ok {
		selector.Index = int(index)
	}
	return selector
}

// engineOverrides collects the engine parameters present in args and marks
// them explicit so that they win over the configuration file.
func engineOverrides(args map[string]interface{}) (config.FlagOverrides, config.ExplicitFlags) {
	var overrides config.FlagOverrides
	explicit := make(config.ExplicitFlags)

	if deprel, ok := args["deprel"].(bool); ok {
		overrides.Deprel = deprel
		explicit[config.FlagDeprel] = true
	}
	if upos, ok := args["upos"].(bool); ok {
		overrides.UPOS = upos
		explicit[config.FlagUPOS] = true
	}
	if algorithm, ok := args["algorithm"].(string); ok {
		overrides.Algorithm = algorithm
		explicit[config.FlagAlgorithm] = true
	}
	if maxExpanded, ok := args["max_expanded"].(float64); ok {
		overrides.MaxExpanded = int(maxExpanded)
		explicit[config.FlagMaxExpanded] = true
	}
	if timeout, ok := args["timeout_seconds"].(float64); ok {
		overrides.Timeout = timeout
		explicit[config.FlagTimeout] = true
	}

	// Reports are always serialised as JSON by the handlers
	overrides.Format = string(domain.OutputFormatJSON)
	explicit[config.FlagFormat] = true

	return overrides, explicit
}

func formatCorpusSummary(result *domain.BatchResponse) map[string]interface{} {
	failures := make([]map[string]interface{}, 0)
	for _, pair := range result.Pairs {
		if !pair.Failed() {
			continue
		}
		failures = append(failures, map[string]interface{}{
			"index": pair.Index,
			"id":    pair.ID,
			"error": pair.Error,
		})
	}

	return map[string]interface{}{
		"cost_model":       result.CostModel,
		"compared":         result.Summary.Compared,
		"failed":           result.Summary.Failed,
		"unpaired":         result.Summary.Unpaired,
		"mean_distance":    result.Summary.Mean,
		"total_elapsed_ms": result.Summary.TotalElapsed.Milliseconds(),
		"failures":         failures,
	}
}
