package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/urfave/cli/v2"

	"github.com/sheharyaraj/Copilot-Studio-Compatible-Agent/pkg/a2a"
	"github.com/sheharyaraj/Copilot-Studio-Compatible-Agent/pkg/activity"
	"github.com/sheharyaraj/Copilot-Studio-Compatible-Agent/pkg/agent"
	"github.com/sheharyaraj/Copilot-Studio-Compatible-Agent/pkg/api"
	"github.com/sheharyaraj/Copilot-Studio-Compatible-Agent/pkg/config"
	"github.com/sheharyaraj/Copilot-Studio-Compatible-Agent/pkg/llm"
	"github.com/sheharyaraj/Copilot-Studio-Compatible-Agent/pkg/tools"
)

// serveCommand creates the 'serve' command
func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the bot HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host address to bind to (overrides HOST)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides PORT)",
			},
			&cli.StringSliceFlag{
				Name:  "allow-origins",
				Usage: "Allowed CORS origins",
				Value: cli.NewStringSlice("*"),
			},
		},
		Action: serveCommandAction,
	}
}

func serveCommandAction(c *cli.Context) error {
	ag, toolset, cfg, err := buildAgent(c)
	if err != nil {
		return err
	}
	if toolset != nil {
		defer toolset.Close()
	}

	if host := c.String("host"); host != "" {
		cfg.Host = host
	}
	if port := c.Int("port"); port != 0 {
		cfg.Port = port
	}

	fmt.Printf("Starting %s...\n", cfg.AgentName)
	fmt.Printf("Server address: http://%s:%d\n", cfg.Host, cfg.Port)
	fmt.Printf("Endpoint: http://%s:%d/api/messages\n", cfg.Host, cfg.Port)
	fmt.Printf("Model: %s\n", cfg.OpenAIModel)

	server := api.NewServer(&api.ServerConfig{
		Host:             cfg.Host,
		Port:             cfg.Port,
		AllowOrigins:     c.StringSlice("allow-origins"),
		AgentName:        cfg.AgentName,
		AgentDescription: cfg.AgentDescription,
	}, ag, activity.NewConnectorSender(), a2a.NewTaskStore())

	return server.Start()
}

// buildAgent wires the full agent from configuration. The returned
// toolset is nil when no MCP server is configured or the connection
// failed; MCP failures never prevent startup.
func buildAgent(c *cli.Context) (*agent.Agent, *tools.MCPToolset, *config.Config, error) {
	if err := config.LoadDotEnv(c.String("env-file")); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.ApplyManifest(c.String("manifest")); err != nil {
		return nil, nil, nil, err
	}

	weather := tools.NewWeatherTool(cfg.WeatherAPIKey)
	agentTools := []tools.Tool{weather}

	var toolset *tools.MCPToolset
	if cfg.MCPServerURL != "" {
		toolset, err = tools.ConnectMCP(context.Background(), cfg.MCPServerURL, cfg.MCPServerTimeout)
		if err != nil {
			log.Printf("Warning: could not connect to MCP server %s: %v", cfg.MCPServerURL, err)
		} else {
			agentTools = append(agentTools, toolset.Tools()...)
			log.Printf("Connected to MCP server %s (%d tools)", cfg.MCPServerURL, len(toolset.Tools()))
		}
	}

	instructions := cfg.Instructions
	if instructions == "" {
		instructions = agent.Instructions(cfg.AgentName, cfg.AgentDescription, agentTools)
	}

	client, err := llm.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, instructions, agentTools)
	if err != nil {
		if toolset != nil {
			toolset.Close()
		}
		return nil, nil, nil, err
	}

	return agent.New(cfg.AgentName, cfg.AgentDescription, client, weather), toolset, cfg, nil
}
