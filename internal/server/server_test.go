package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	s := New()
	defer s.Close()
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cache == nil {
		t.Fatal("New() did not initialize cache")
	}
	if s.jobs == nil {
		t.Fatal("New() did not initialize dispatcher")
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{
			"string id",
			`{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`,
			"test-1",
			"tools/list",
		},
		{
			"number id",
			`{"jsonrpc":"2.0","id":42,"method":"ping"}`,
			float64(42), // JSON numbers decode as float64
			"ping",
		},
		{
			"null id",
			`{"jsonrpc":"2.0","id":null,"method":"initialize"}`,
			nil,
			"initialize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}

			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestMCPResponse_WithError(t *testing.T) {
	resp := MCPResponse{
		JSONRPC: "2.0",
		ID:      1,
		Error: &MCPError{
			Code:    -32601,
			Message: "Method not found",
		},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if strings.Contains(string(data), `"result"`) {
		t.Errorf("error response should omit result: %s", data)
	}

	var decoded MCPResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if decoded.Error == nil || decoded.Error.Code != -32601 {
		t.Errorf("Error: got %+v, want code -32601", decoded.Error)
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := New()
	defer s.Close()

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: "init-1", Method: "initialize"})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if resp.ID != "init-1" {
		t.Errorf("ID: got %v, want init-1", resp.ID)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}

	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	if !ok {
		t.Fatal("serverInfo should be a map")
	}
	if serverInfo["name"] != "stamp-motif-mcp" {
		t.Errorf("serverInfo.name: got %v", serverInfo["name"])
	}
	if serverInfo["version"] != ServerVersion {
		t.Errorf("serverInfo.version: got %v, want %s", serverInfo["version"], ServerVersion)
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := New()
	defer s.Close()

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: "ping-1", Method: "ping"})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if resp.ID != "ping-1" {
		t.Errorf("ID: got %v, want ping-1", resp.ID)
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	s := New()
	defer s.Close()

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != 8 {
		t.Errorf("Expected 8 tools, got %d", len(toolsList))
	}
}

func TestHandleRequest_NotificationsInitialized(t *testing.T) {
	s := New()
	defer s.Close()

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"})

	// Notifications don't get responses
	if resp != nil {
		t.Error("notifications/initialized should return nil response")
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := New()
	defer s.Close()

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "nonexistent/method"})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error == nil {
		t.Fatal("Expected error for unknown method")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("Error code: got %d, want -32601", resp.Error.Code)
	}
}

func TestServe(t *testing.T) {
	s := New()
	defer s.Close()

	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"motif_nope","arguments":{}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"ping"}`,
	}, "\n")

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(input), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	codes := map[float64]int{}
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp struct {
			ID    float64   `json:"id"`
			Error *MCPError `json:"error"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("bad response line %q: %v", scanner.Text(), err)
		}
		codes[resp.ID] = 0
		if resp.Error != nil {
			codes[resp.ID] = resp.Error.Code
		}
	}

	// Tool calls may answer out of order; match by ID.
	want := map[float64]int{1: 0, 2: -32000, 3: 0}
	if len(codes) != len(want) {
		t.Fatalf("got %d responses, want %d: %v", len(codes), len(want), codes)
	}
	for id, code := range want {
		if got, ok := codes[id]; !ok || got != code {
			t.Errorf("response %v: got code %d (present %v), want %d", id, got, ok, code)
		}
	}
}
