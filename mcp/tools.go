package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/s0up4200/overseerr-mcp/aggregator"
)

// Tool names
const (
	toolGetStatus        = "overseerr_get_status"
	toolGetMovieRequests = "overseerr_get_movie_requests"
	toolGetTVRequests    = "overseerr_get_tv_requests"
)

func (s *Server) handleToolsList(req jsonrpcRequest) *jsonrpcResponse {
	tools := toolDefinitions()
	s.logger.Info().Int("items", len(tools)).Msg("tool list")
	return rpcResult(req.ID, map[string]any{"tools": tools})
}

func (s *Server) handleToolsCall(ctx context.Context, req jsonrpcRequest) *jsonrpcResponse {
	var params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return rpcErr(req.ID, -32602, "Invalid params: "+err.Error())
	}

	switch params.Name {
	case toolGetStatus:
		return s.toolStatus(ctx, req.ID, params.Arguments)
	case toolGetMovieRequests:
		return s.toolMovieRequests(ctx, req.ID, params.Arguments)
	case toolGetTVRequests:
		return s.toolTVRequests(ctx, req.ID, params.Arguments)
	default:
		return rpcErr(req.ID, -32602, "Unknown tool: "+params.Name)
	}
}

func (s *Server) toolStatus(ctx context.Context, id any, args map[string]any) *jsonrpcResponse {
	if len(args) > 0 {
		return toolError(id, toolGetStatus+" takes no arguments")
	}
	report := s.ops.StatusReport(ctx)
	s.logger.Info().Str("tool", toolGetStatus).Msg("tool call")
	return toolTextResult(id, report)
}

func (s *Server) toolMovieRequests(ctx context.Context, id any, args map[string]any) *jsonrpcResponse {
	filter, startDate, err := parseRequestArgs(args)
	if err != nil {
		return toolError(id, err.Error())
	}
	results, err := s.ops.GetMovieRequests(ctx, filter, startDate)
	if err != nil {
		return toolError(id, err.Error())
	}
	s.logger.Info().Str("tool", toolGetMovieRequests).Int("items", len(results)).Msg("tool call")
	return marshalToolResult(id, results)
}

func (s *Server) toolTVRequests(ctx context.Context, id any, args map[string]any) *jsonrpcResponse {
	filter, startDate, err := parseRequestArgs(args)
	if err != nil {
		return toolError(id, err.Error())
	}
	results, err := s.ops.GetTVRequests(ctx, filter, startDate)
	if err != nil {
		return toolError(id, err.Error())
	}
	s.logger.Info().Str("tool", toolGetTVRequests).Int("items", len(results)).Msg("tool call")
	return marshalToolResult(id, results)
}

// parseRequestArgs coerces the shared status/start_date arguments of
// the request-listing tools.
func parseRequestArgs(args map[string]any) (aggregator.RequestFilter, *time.Time, error) {
	filter, err := aggregator.ParseRequestFilter(str(args, "status"))
	if err != nil {
		return "", nil, err
	}

	var startDate *time.Time
	if raw := str(args, "start_date"); raw != "" {
		t, ok := aggregator.ParseTimestamp(raw)
		if !ok {
			return "", nil, &invalidStartDateError{value: raw}
		}
		startDate = &t
	}

	return filter, startDate, nil
}

type invalidStartDateError struct {
	value string
}

func (e *invalidStartDateError) Error() string {
	return "start_date is not a valid ISO 8601 timestamp: " + e.value
}

func marshalToolResult(id any, v any) *jsonrpcResponse {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(id, err.Error())
	}
	return toolTextResult(id, string(data))
}

// --- definitions ---

func toolDefinitions() []map[string]any {
	return []map[string]any{
		{
			"name":        toolGetStatus,
			"description": "Get the current status and version of the Overseerr server.",
			"inputSchema": map[string]any{
				"type":                 "object",
				"properties":           map[string]any{},
				"additionalProperties": false,
			},
		},
		{
			"name": toolGetMovieRequests,
			"description": "Get a list of movie requests from Overseerr. " +
				"Can be filtered by status (e.g., 'approved', 'pending') and start date.",
			"inputSchema": requestFilterSchema(),
		},
		{
			"name": toolGetTVRequests,
			"description": "Get a list of TV show requests from Overseerr. " +
				"Can be filtered by status (e.g., 'approved', 'pending') and start date.",
			"inputSchema": requestFilterSchema(),
		},
	}
}

func requestFilterSchema() map[string]any {
	statuses := make([]string, 0, len(aggregator.RequestFilters))
	for _, f := range aggregator.RequestFilters {
		statuses = append(statuses, f.String())
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status": map[string]any{
				"type": "string",
				"enum": statuses,
				"description": "Limit results to requests matching the Overseerr status " +
					"(approved, available, pending, processing, unavailable, failed).",
			},
			"start_date": map[string]any{
				"type":   "string",
				"format": "date-time",
				"description": "Return requests created on or after the provided ISO 8601 " +
					"timestamp (e.g. 2020-09-12T10:00:27Z).",
			},
		},
		"additionalProperties": false,
	}
}

func str(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
