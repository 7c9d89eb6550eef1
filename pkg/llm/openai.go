package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/sheharyaraj/Copilot-Studio-Compatible-Agent/pkg/tools"
)

// maxToolRounds bounds the model/tool round trips for a single query so a
// looping model cannot hold a request open forever.
const maxToolRounds = 8

// OpenAIClient runs queries against the OpenAI Chat Completion API with
// function calling enabled for the agent's tools.
type OpenAIClient struct {
	client       *openai.Client
	model        string
	instructions string
	tools        []tools.Tool
}

var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient creates a client for the given model. baseURL is
// optional and overrides the API endpoint when non-empty.
func NewOpenAIClient(apiKey, model, baseURL, instructions string, agentTools []tools.Tool) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	c := openai.NewClient(options...)
	return &OpenAIClient{
		client:       &c,
		model:        model,
		instructions: instructions,
		tools:        agentTools,
	}, nil
}

// Run sends the query to the model, executing any tool calls it requests,
// and returns the final response as a message list (system prompt
// excluded) so callers can inspect the whole exchange.
func (o *OpenAIClient) Run(ctx context.Context, query string) (*Result, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(o.instructions),
		openai.UserMessage(query),
	}

	result := &Result{
		Kind:     ResultMessages,
		Messages: []ChatMessage{{Role: "user", Content: query}},
	}

	for round := 0; round < maxToolRounds; round++ {
		params := openai.ChatCompletionNewParams{
			Model:    openai.ChatModel(o.model),
			Messages: messages,
			Tools:    o.toolParams(),
		}

		resp, err := o.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("failed to send message to OpenAI: %w", err)
		}
		if len(resp.Choices) == 0 {
			result.Messages = append(result.Messages, ChatMessage{Role: "assistant", Content: ""})
			return result, nil
		}

		choice := resp.Choices[0].Message
		if len(choice.ToolCalls) == 0 {
			result.Messages = append(result.Messages, ChatMessage{Role: "assistant", Content: choice.Content})
			return result, nil
		}

		// The model requested tool calls; execute each and feed the
		// outputs back before asking for the final answer.
		messages = append(messages, choice.ToParam())
		for _, call := range choice.ToolCalls {
			output := o.executeToolCall(ctx, call.Function.Name, call.Function.Arguments)
			messages = append(messages, openai.ToolMessage(output, call.ID))
			result.Messages = append(result.Messages, ChatMessage{Role: "tool", Content: output})
		}
	}

	return nil, fmt.Errorf("model did not produce a final answer after %d tool rounds", maxToolRounds)
}

// executeToolCall runs a named tool. Failures are returned as text so the
// model can recover or relay them.
func (o *OpenAIClient) executeToolCall(ctx context.Context, name, rawArgs string) string {
	var args map[string]any
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return fmt.Sprintf("Error: invalid arguments for tool '%s': %s", name, err)
	}

	for _, t := range o.tools {
		if t.Name() != name {
			continue
		}
		log.Printf("Executing tool %s", name)
		output, err := t.Execute(ctx, args)
		if err != nil {
			return fmt.Sprintf("Error executing tool '%s': %s", name, err)
		}
		return output
	}
	return fmt.Sprintf("Error: unknown tool '%s'", name)
}

// toolParams converts the agent's tools to the OpenAI function-tool
// format.
func (o *OpenAIClient) toolParams() []openai.ChatCompletionToolUnionParam {
	if len(o.tools) == 0 {
		return nil
	}

	var out []openai.ChatCompletionToolUnionParam
	for _, t := range o.tools {
		out = append(out, openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        t.Name(),
			Description: openai.String(t.Description()),
			Parameters:  openai.FunctionParameters(t.Declaration()),
		}))
	}
	return out
}
