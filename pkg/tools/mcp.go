package tools

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPToolset exposes the tools of a remote MCP server, such as the
// Microsoft Learn documentation server, as regular agent tools.
type MCPToolset struct {
	serverURL string
	session   *mcpsdk.ClientSession
	tools     []Tool
}

// ConnectMCP connects to the MCP server at serverURL over streamable HTTP
// and discovers its tools. The timeout bounds both the connection and the
// individual tool calls made later.
func ConnectMCP(ctx context.Context, serverURL string, timeout time.Duration) (*MCPToolset, error) {
	client := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    "copilot-studio-agent",
		Version: "v1.0.0",
	}, nil)

	transport := mcpsdk.NewStreamableClientTransport(serverURL, &mcpsdk.StreamableClientTransportOptions{
		HTTPClient: &http.Client{Timeout: timeout},
	})

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	session, err := client.Connect(connectCtx, transport)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MCP server %s: %w", serverURL, err)
	}

	ts := &MCPToolset{
		serverURL: serverURL,
		session:   session,
	}

	params := &mcpsdk.ListToolsParams{}
	for {
		list, err := session.ListTools(connectCtx, params)
		if err != nil {
			session.Close()
			return nil, fmt.Errorf("failed to list tools from MCP server %s: %w", serverURL, err)
		}
		for _, t := range list.Tools {
			ts.tools = append(ts.tools, &mcpTool{
				name:        t.Name,
				description: t.Description,
				session:     session,
			})
		}
		if list.NextCursor == "" {
			break
		}
		params.Cursor = list.NextCursor
	}

	log.Printf("Connected to MCP server %s with %d tools", serverURL, len(ts.tools))
	return ts, nil
}

// Tools returns the discovered tools.
func (ts *MCPToolset) Tools() []Tool {
	return ts.tools
}

// Close terminates the MCP session.
func (ts *MCPToolset) Close() error {
	if ts.session != nil {
		return ts.session.Close()
	}
	return nil
}

// mcpTool adapts a single remote MCP tool to the Tool interface.
type mcpTool struct {
	name        string
	description string
	session     *mcpsdk.ClientSession
}

func (t *mcpTool) Name() string {
	return t.name
}

func (t *mcpTool) Description() string {
	return t.description
}

// Declaration returns a permissive schema; the remote server validates
// arguments itself.
func (t *mcpTool) Declaration() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

// Execute forwards the call to the MCP server and concatenates the text
// content of the result.
func (t *mcpTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	result, err := t.session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      t.name,
		Arguments: args,
	})
	if err != nil {
		return "", fmt.Errorf("failed to call tool '%s': %w", t.name, err)
	}

	var out string
	for _, content := range result.Content {
		if text, ok := content.(*mcpsdk.TextContent); ok {
			out += text.Text
		}
	}
	return out, nil
}
