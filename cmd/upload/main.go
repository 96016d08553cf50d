package main

import (
	"context"
	"log"
	"os"

	"github.com/fastnear/near-outlayer/internal/cli"
	"github.com/fastnear/near-outlayer/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

}
