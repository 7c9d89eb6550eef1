// Package agent implements the agent facade shared by both transport
// handlers: it routes each query either to the deterministic weather tool
// or to the language-model client, and always produces text.
package agent

import (
	"context"
	"fmt"
	"log"

	"github.com/sheharyaraj/Copilot-Studio-Compatible-Agent/pkg/llm"
	"github.com/sheharyaraj/Copilot-Studio-Compatible-Agent/pkg/tools"
)

// WeatherLookup is the deterministic weather capability used for the
// bypass path. *tools.WeatherTool implements it.
type WeatherLookup interface {
	GetWeather(ctx context.Context, location string) string
}

// Agent wraps the language-model client and the weather tool behind a
// single runQuery contract.
type Agent struct {
	name        string
	description string
	client      llm.Client
	weather     WeatherLookup
}

// New creates the agent facade.
func New(name, description string, client llm.Client, weather WeatherLookup) *Agent {
	return &Agent{
		name:        name,
		description: description,
		client:      client,
		weather:     weather,
	}
}

// Name returns the agent's display name.
func (a *Agent) Name() string {
	return a.name
}

// Description returns the agent's description.
func (a *Agent) Description() string {
	return a.description
}

// RunQuery answers a user query and always returns text: processing
// failures are folded into the reply rather than propagated, so transport
// handlers never see an error from this path.
//
// Weather queries are a hard guarantee: the full tool output is returned
// verbatim. Some model stacks paraphrase or truncate tool responses; the
// bypass ensures callers always get the raw API payload.
func (a *Agent) RunQuery(ctx context.Context, query string) string {
	if IsWeatherQuery(query) {
		location := ExtractLocation(query)
		log.Printf("Weather bypass for location %q", location)
		return a.weather.GetWeather(ctx, location)
	}

	result, err := a.client.Run(ctx, query)
	if err != nil {
		return fmt.Sprintf("Error processing query: %s", err)
	}
	return result.Reply()
}

// Instructions builds the system prompt for the language-model client
// from the agent's identity and tool inventory.
func Instructions(name, description string, agentTools []tools.Tool) string {
	prompt := fmt.Sprintf(`You are %s. %s

You have access to the following tools:
`, name, description)

	for i, t := range agentTools {
		prompt += fmt.Sprintf("%d. %s - %s\n", i+1, t.Name(), t.Description())
	}

	prompt += `
IMPORTANT INSTRUCTIONS:
- When providing weather information, ALWAYS call the get_weather tool.
- Then output the tool result *verbatim* (do not rewrite/reformat the JSON).
- After the verbatim tool output, add a short human-readable summary.

Use these tools when appropriate to provide comprehensive and accurate answers.
Always be helpful, accurate, and provide detailed responses with specific numbers and facts.`

	return prompt
}
