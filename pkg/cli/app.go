// Package cli implements the agent command line interface.
package cli

import (
	"github.com/urfave/cli/v2"
)

// Version information - will be set during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// NewApp creates and configures the CLI application
func NewApp() *cli.App {
	return &cli.App{
		Name:    "agent",
		Usage:   "Copilot Studio compatible weather agent",
		Version: Version,
		Commands: []*cli.Command{
			serveCommand(),
			runCommand(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file to load before reading configuration",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:  "manifest",
				Usage: "Path to an agent.yaml manifest overriding environment settings",
				Value: "agent.yaml",
			},
		},
	}
}
