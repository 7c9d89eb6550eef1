// Package config loads agent configuration from the environment, an
// optional .env file and an optional agent.yaml manifest.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAgentDescription is used when AGENT_DESCRIPTION is not set.
const DefaultAgentDescription = "An AI agent powered by OpenAI that can answer user queries and use various tools"

// Config contains all startup parameters for the agent process.
type Config struct {
	AgentName        string
	AgentDescription string
	Instructions     string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	WeatherAPIKey string

	MCPServerURL     string
	MCPServerTimeout time.Duration

	Host string
	Port int

	// Bot Framework credentials. Authentication itself is handled by the
	// transport layer; these are only carried through.
	AppID       string
	AppPassword string
}

// Manifest is the optional agent.yaml file. Values present in the
// manifest override the corresponding environment variables.
type Manifest struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Instructions string   `yaml:"instructions"`
	Skills       []string `yaml:"skills"`
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		AgentName:        getEnv("AGENT_NAME", "OpenAI-Agent"),
		AgentDescription: getEnv("AGENT_DESCRIPTION", DefaultAgentDescription),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		WeatherAPIKey:    os.Getenv("OPENWEATHER_API_KEY"),
		MCPServerURL:     os.Getenv("MCP_SERVER_URL"),
		Host:             getEnv("HOST", "0.0.0.0"),
		AppID:            os.Getenv("MICROSOFT_APP_ID"),
		AppPassword:      os.Getenv("MICROSOFT_APP_PASSWORD"),
	}

	port, err := getEnvInt("PORT", 3978)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	cfg.Port = port

	mcpTimeout, err := getEnvInt("MCP_SERVER_TIMEOUT", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid MCP_SERVER_TIMEOUT: %w", err)
	}
	cfg.MCPServerTimeout = time.Duration(mcpTimeout) * time.Second

	return cfg, nil
}

// ApplyManifest overlays a manifest file onto the config. A missing file
// is not an error.
func (c *Config) ApplyManifest(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	if m.Name != "" {
		c.AgentName = m.Name
	}
	if m.Description != "" {
		c.AgentDescription = m.Description
	}
	if m.Instructions != "" {
		c.Instructions = m.Instructions
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
