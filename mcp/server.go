// Package mcp implements the Model Context Protocol over HTTP:
// a JSON-RPC 2.0 endpoint exposing the Overseerr aggregation
// operations as callable tools.
package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/overseerr-mcp/aggregator"
)

const (
	protocolVersion = "2025-06-18"
	serverName      = "overseerr-mcp"
)

// Server handles MCP traffic and delegates tool calls to the
// aggregation operations.
type Server struct {
	ops      *aggregator.Operations
	token    string // empty = no auth required
	version  string
	logger   zerolog.Logger
	sessions sync.Map
}

// NewServer creates an MCP server. token, when non-empty, is required
// as a bearer token on every request.
func NewServer(ops *aggregator.Operations, version, token string, logger zerolog.Logger) *Server {
	return &Server{
		ops:     ops,
		token:   token,
		version: version,
		logger:  logger,
	}
}

// --- response writer wrapper ---

type responseWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
	rpcMethod   string
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.wroteHeader = true
		rw.status = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// --- JSON-RPC types ---

type jsonrpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonrpcResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func rpcResult(id any, result any) *jsonrpcResponse {
	return &jsonrpcResponse{JSONRPC: "2.0", ID: id, Result: result}
}

func rpcErr(id any, code int, msg string) *jsonrpcResponse {
	return &jsonrpcResponse{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: msg}}
}

// --- HTTP handler ---

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

	s.serveRequest(rw, r)

	s.logger.Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", rw.status).
		Dur("duration", time.Since(start)).
		Str("rpc_method", rw.rpcMethod).
		Int("response_bytes", rw.bytes).
		Msg("http request")
}

func (s *Server) serveRequest(w *responseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.token != "" {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != s.token {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	var req jsonrpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusOK, rpcErr(nil, -32700, "Parse error"))
		return
	}

	w.rpcMethod = req.Method

	if req.JSONRPC != "2.0" {
		writeJSON(w, http.StatusOK, rpcErr(req.ID, -32600, "Invalid request: jsonrpc must be 2.0"))
		return
	}

	// Notifications carry no ID and expect no response body.
	if req.ID == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	if req.Method != "initialize" {
		sessionID := r.Header.Get("Mcp-Session-Id")
		if sessionID != "" {
			if _, ok := s.sessions.Load(sessionID); !ok {
				writeJSON(w, http.StatusOK, rpcErr(req.ID, -32600, "Invalid session"))
				return
			}
		}
	}

	resp := s.dispatch(r.Context(), req)

	if req.Method == "initialize" && resp.Error == nil {
		if result, ok := resp.Result.(map[string]any); ok {
			if sid, ok := result["_sessionId"].(string); ok {
				w.Header().Set("Mcp-Session-Id", sid)
				delete(result, "_sessionId")
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) dispatch(ctx context.Context, req jsonrpcRequest) *jsonrpcResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "ping":
		return rpcResult(req.ID, map[string]any{})
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	default:
		return rpcErr(req.ID, -32601, "Method not found: "+req.Method)
	}
}

func (s *Server) handleInitialize(req jsonrpcRequest) *jsonrpcResponse {
	sessionID := generateSessionID()
	s.sessions.Store(sessionID, true)

	result := map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    serverName,
			"version": s.version,
		},
		"_sessionId": sessionID, // stripped by serveRequest and set as header
	}
	return rpcResult(req.ID, result)
}

// --- helpers ---

func toolTextResult(id any, text string) *jsonrpcResponse {
	return rpcResult(id, map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
		"isError": false,
	})
}

func toolError(id any, msg string) *jsonrpcResponse {
	return rpcResult(id, map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": msg},
		},
		"isError": true,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func generateSessionID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
