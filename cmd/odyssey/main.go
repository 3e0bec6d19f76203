package main

import (
	"context"
	"os"

	"github.com/odysseyhq/odyssey-cli/internal/client/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
