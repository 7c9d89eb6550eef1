package main

import (
	"log"
	"os"

	"github.com/sheharyaraj/Copilot-Studio-Compatible-Agent/pkg/cli"
)

func main() {
	app := cli.NewApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
