package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"AGENT_NAME", "AGENT_DESCRIPTION", "OPENAI_MODEL", "HOST", "PORT",
		"MCP_SERVER_TIMEOUT", "OPENAI_API_KEY", "OPENWEATHER_API_KEY",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AgentName != "OpenAI-Agent" {
		t.Errorf("AgentName = %q", cfg.AgentName)
	}
	if cfg.AgentDescription != DefaultAgentDescription {
		t.Errorf("AgentDescription = %q", cfg.AgentDescription)
	}
	if cfg.OpenAIModel != "gpt-4" {
		t.Errorf("OpenAIModel = %q", cfg.OpenAIModel)
	}
	if cfg.Host != "0.0.0.0" || cfg.Port != 3978 {
		t.Errorf("address = %s:%d", cfg.Host, cfg.Port)
	}
	if cfg.MCPServerTimeout != 30*time.Second {
		t.Errorf("MCPServerTimeout = %v", cfg.MCPServerTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AGENT_NAME", "Weather-Agent")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("PORT", "8080")
	t.Setenv("MCP_SERVER_TIMEOUT", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AgentName != "Weather-Agent" {
		t.Errorf("AgentName = %q", cfg.AgentName)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("OpenAIModel = %q", cfg.OpenAIModel)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.MCPServerTimeout != 5*time.Second {
		t.Errorf("MCPServerTimeout = %v", cfg.MCPServerTimeout)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid PORT")
	}
}

func TestApplyManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	manifest := `name: Weather-Agent
description: Answers weather questions
instructions: Always use the weather tool.
`
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{AgentName: "OpenAI-Agent", AgentDescription: "default"}
	if err := cfg.ApplyManifest(path); err != nil {
		t.Fatalf("ApplyManifest: %v", err)
	}

	if cfg.AgentName != "Weather-Agent" {
		t.Errorf("AgentName = %q", cfg.AgentName)
	}
	if cfg.AgentDescription != "Answers weather questions" {
		t.Errorf("AgentDescription = %q", cfg.AgentDescription)
	}
	if cfg.Instructions != "Always use the weather tool." {
		t.Errorf("Instructions = %q", cfg.Instructions)
	}
}

func TestApplyManifestMissingFile(t *testing.T) {
	cfg := &Config{AgentName: "keep-me"}
	if err := cfg.ApplyManifest(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("missing manifest should be ignored: %v", err)
	}
	if cfg.AgentName != "keep-me" {
		t.Errorf("AgentName changed to %q", cfg.AgentName)
	}
}

func TestApplyManifestInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := (&Config{}).ApplyManifest(path); err == nil {
		t.Error("expected error for invalid manifest")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `# comment
OPENWEATHER_API_KEY=abc123
export OPENAI_MODEL="gpt-4o"
EMPTY_OK=

PRESET_KEY=from-file
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PRESET_KEY", "from-env")
	t.Setenv("OPENWEATHER_API_KEY", "")
	os.Unsetenv("OPENWEATHER_API_KEY")
	t.Setenv("OPENAI_MODEL", "")
	os.Unsetenv("OPENAI_MODEL")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}

	if got := os.Getenv("OPENWEATHER_API_KEY"); got != "abc123" {
		t.Errorf("OPENWEATHER_API_KEY = %q", got)
	}
	if got := os.Getenv("OPENAI_MODEL"); got != "gpt-4o" {
		t.Errorf("OPENAI_MODEL = %q", got)
	}
	// Existing environment values win over the file.
	if got := os.Getenv("PRESET_KEY"); got != "from-env" {
		t.Errorf("PRESET_KEY = %q", got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing .env should be ignored: %v", err)
	}
}
