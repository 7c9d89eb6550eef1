// Package llm provides the language-model client used by the agent
// facade, including the OpenAI implementation with function calling.
package llm

import (
	"context"
	"fmt"
)

// ResultKind tags the shape of a model run result.
type ResultKind int

const (
	// ResultText means the result carries a single final text.
	ResultText ResultKind = iota
	// ResultMessages means the result carries an ordered message list
	// and the last message holds the final text.
	ResultMessages
)

// ChatMessage is one turn of a model conversation.
type ChatMessage struct {
	Role    string
	Content string
}

// Result is the outcome of a model run. It collapses the heterogeneous
// shapes different model stacks return (a top-level text, or a message
// list) into one tagged type at the client boundary.
type Result struct {
	Kind     ResultKind
	Text     string
	Messages []ChatMessage
}

// Reply returns the final text of the result: the top-level text when
// present, otherwise the last message's text, otherwise the stringified
// result.
func (r *Result) Reply() string {
	switch {
	case r.Kind == ResultText && r.Text != "":
		return r.Text
	case r.Kind == ResultMessages && len(r.Messages) > 0:
		return r.Messages[len(r.Messages)-1].Content
	default:
		return fmt.Sprintf("%v", *r)
	}
}

// Client is the interface for running a free-text query against a
// language model that may invoke the provided tools.
type Client interface {
	Run(ctx context.Context, query string) (*Result, error)
}

// Mock is a canned-response client for tests.
type Mock struct {
	Response string
	Err      error

	// Queries records every query passed to Run.
	Queries []string
}

var _ Client = (*Mock)(nil)

// Run returns the canned response.
func (m *Mock) Run(_ context.Context, query string) (*Result, error) {
	m.Queries = append(m.Queries, query)
	if m.Err != nil {
		return nil, m.Err
	}
	return &Result{Kind: ResultText, Text: m.Response}, nil
}
