package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/ironsheep/stamp-motif-mcp/internal/imaging"
	"github.com/ironsheep/stamp-motif-mcp/internal/motif"
)

// ServerName is reported to clients during initialize.
const ServerName = "stamp-motif-mcp"

// ServerVersion is reported to clients during initialize. The command sets
// it from its build version.
var ServerVersion = "0.1.0"

// Server handles MCP protocol communication
type Server struct {
	ctx   context.Context
	cache *imaging.ImageCache
	jobs  *motif.Dispatcher
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance
func New() *Server {
	ctx := context.Background()
	return &Server{
		ctx:   ctx,
		cache: imaging.NewImageCache(),
		jobs:  motif.NewDispatcher(ctx),
	}
}

// Close cancels running motif jobs and waits for them to finish.
func (s *Server) Close() {
	s.jobs.Close()
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads newline-delimited JSON-RPC requests from r and writes
// responses to w until r is exhausted.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)
	var mu sync.Mutex
	var wg sync.WaitGroup
	send := func(resp *MCPResponse) {
		if resp == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if err := encoder.Encode(resp); err != nil {
			log.Printf("Failed to encode response: %v", err)
		}
	}

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		// Tool calls run concurrently so a newer motif request can
		// supersede one still in progress. Responses carry their IDs.
		if req.Method == "tools/call" {
			wg.Add(1)
			go func() {
				defer wg.Done()
				send(s.handleRequest(&req))
			}()
			continue
		}
		send(s.handleRequest(&req))
	}
	wg.Wait()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    ServerName,
				"version": ServerVersion,
			},
		},
	}
}
