// Package a2a defines the Agent-to-Agent (A2A) protocol objects exchanged
// over JSON-RPC, the in-memory task store and the response self-check.
package a2a

// Role values carried on a Message.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// Kind discriminators used on the wire.
const (
	KindMessage = "message"
	KindTask    = "task"
	KindText    = "text"
)

// Part is a component of a message. Only text parts are consumed by this
// agent; other kinds are carried through untouched.
type Part struct {
	Kind     string         `json:"kind"`
	Text     string         `json:"text,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Message is a single turn in a task conversation.
type Message struct {
	ContextID string `json:"contextId,omitempty"`
	Kind      string `json:"kind"`
	MessageID string `json:"messageId"`
	TaskID    string `json:"taskId,omitempty"`
	Parts     []Part `json:"parts"`
	Role      string `json:"role"`
}

// FirstText returns the text of the first text part, or "" when the
// message carries none.
func (m *Message) FirstText() string {
	for _, part := range m.Parts {
		if part.Kind == KindText {
			return part.Text
		}
	}
	return ""
}

// TaskState represents the possible states of a task. This agent completes
// every task synchronously inside message/send, so only completed is ever
// produced.
type TaskState string

const (
	TaskStateSubmitted TaskState = "submitted"
	TaskStateWorking   TaskState = "working"
	TaskStateCompleted TaskState = "completed"
	TaskStateFailed    TaskState = "failed"
)

// TaskStatus is the current status of a task.
type TaskStatus struct {
	State   TaskState `json:"state"`
	Message *Message  `json:"message,omitempty"`
}

// Task is a completed unit of agent work, retrievable later by id.
type Task struct {
	Kind      string     `json:"kind"`
	ID        string     `json:"id"`
	ContextID string     `json:"contextId,omitempty"`
	History   []*Message `json:"history,omitempty"`
	Status    TaskStatus `json:"status"`
}

// SendMessageParams are the params of a message/send request.
type SendMessageParams struct {
	Message       RawMessage     `json:"message"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// RawMessage is the inbound message shape. Some callers send snake_case
// identifiers, so both spellings are accepted (camelCase wins).
type RawMessage struct {
	ContextID      string `json:"contextId,omitempty"`
	ContextIDSnake string `json:"context_id,omitempty"`
	MessageID      string `json:"messageId,omitempty"`
	MessageIDSnake string `json:"message_id,omitempty"`
	TaskID         string `json:"taskId,omitempty"`
	Parts          []Part `json:"parts"`
	Role           string `json:"role,omitempty"`
}

// ContextIDValue returns the context id regardless of spelling.
func (m *RawMessage) ContextIDValue() string {
	if m.ContextID != "" {
		return m.ContextID
	}
	return m.ContextIDSnake
}

// MessageIDValue returns the message id regardless of spelling.
func (m *RawMessage) MessageIDValue() string {
	if m.MessageID != "" {
		return m.MessageID
	}
	return m.MessageIDSnake
}

// FirstText returns the text of the first text part, or "".
func (m *RawMessage) FirstText() string {
	for _, part := range m.Parts {
		if part.Kind == KindText {
			return part.Text
		}
	}
	return ""
}

// TaskQueryParams are the params of a tasks/get request.
type TaskQueryParams struct {
	ID       string         `json:"id"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// JSONRPCRequest is the envelope of an inbound JSON-RPC request.
type JSONRPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id,omitempty"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// JSONRPCResponse is the envelope of an outbound JSON-RPC response.
// Success responses carry Result, failures carry Error.
type JSONRPCResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      any           `json:"id"`
	Result  any           `json:"result,omitempty"`
	Error   *JSONRPCError `json:"error,omitempty"`
}

// AgentCapabilities describes optional protocol features of an agent.
type AgentCapabilities struct {
	Streaming              bool `json:"streaming,omitempty"`
	PushNotifications      bool `json:"pushNotifications,omitempty"`
	StateTransitionHistory bool `json:"stateTransitionHistory,omitempty"`
}

// AgentSkill describes a specific capability of the agent.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// AgentCard provides discovery metadata about an agent.
type AgentCard struct {
	Name               string            `json:"name"`
	Description        string            `json:"description,omitempty"`
	URL                string            `json:"url"`
	Version            string            `json:"version"`
	Capabilities       AgentCapabilities `json:"capabilities"`
	DefaultInputModes  []string          `json:"defaultInputModes,omitempty"`
	DefaultOutputModes []string          `json:"defaultOutputModes,omitempty"`
	Skills             []AgentSkill      `json:"skills"`
}
