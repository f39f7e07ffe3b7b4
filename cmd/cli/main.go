package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mvolkov/tastebook/internal/client/cli"
	"github.com/mvolkov/tastebook/internal/client/config"
	"github.com/mvolkov/tastebook/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	log := logging.NewDefault()

	app, err := cli.NewApp(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	app.Run(context.Background())
}
