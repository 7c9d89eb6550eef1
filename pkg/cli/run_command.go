package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

// runCommand creates the 'run' command
func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run the agent from the terminal without starting a server",
		ArgsUsage: "[QUERY]",
		Action:    runCommandAction,
	}
}

func runCommandAction(c *cli.Context) error {
	ag, toolset, _, err := buildAgent(c)
	if err != nil {
		return err
	}
	if toolset != nil {
		defer toolset.Close()
	}

	// One-shot mode when a query is given on the command line.
	if query := strings.TrimSpace(strings.Join(c.Args().Slice(), " ")); query != "" {
		fmt.Println(ag.RunQuery(c.Context, query))
		return nil
	}

	fmt.Printf("Running agent %s, type 'exit' to exit.\n", ag.Name())
	fmt.Print("[user]: ")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			fmt.Print("[user]: ")
			continue
		}
		switch strings.ToLower(query) {
		case "exit", "quit", "q":
			fmt.Println("Goodbye!")
			return nil
		}

		fmt.Printf("[%s]: %s\n", ag.Name(), ag.RunQuery(c.Context, query))
		fmt.Print("[user]: ")
	}

	return scanner.Err()
}
