// Package tools provides the callable tools exposed to the language model
// agent: real weather lookup via OpenWeatherMap and tools discovered from
// a remote MCP server.
package tools

import "context"

// Tool defines the interface for any action the agent can take.
type Tool interface {
	Name() string
	Description() string

	// Declaration returns a JSON-schema parameter object for LLM
	// function calling.
	Declaration() map[string]any

	Execute(ctx context.Context, args map[string]any) (string, error)
}
