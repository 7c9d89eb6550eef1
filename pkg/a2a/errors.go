package a2a

import "fmt"

// JSON-RPC error codes used by this agent. The first five are the
// standard JSON-RPC 2.0 codes; CodeTaskNotFound is the A2A extension.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeTaskNotFound   = -32001
)

// JSONRPCError is the error object of a failed JSON-RPC response.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error implements the error interface for JSONRPCError.
func (e *JSONRPCError) Error() string {
	return fmt.Sprintf("JSON-RPC error %d: %s", e.Code, e.Message)
}

// NewMethodNotFoundError reports an unsupported JSON-RPC method.
func NewMethodNotFoundError(method string) *JSONRPCError {
	return &JSONRPCError{
		Code:    CodeMethodNotFound,
		Message: fmt.Sprintf("Method not found: %s", method),
	}
}

// NewTaskNotFoundError reports an unknown task id, carrying the id in the
// error data so pollers can tell which lookup failed.
func NewTaskNotFoundError(id string) *JSONRPCError {
	return &JSONRPCError{
		Code:    CodeTaskNotFound,
		Message: "Task not found",
		Data:    map[string]any{"id": id},
	}
}

// NewInternalError wraps an unexpected processing failure.
func NewInternalError(err error) *JSONRPCError {
	return &JSONRPCError{
		Code:    CodeInternalError,
		Message: fmt.Sprintf("Internal error: %s", err),
	}
}
