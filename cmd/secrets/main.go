package main

import (
	"context"
	"log"
	"os"

	"github.com/fastnear/near-outlayer/internal/secrets"
)

func main() {

	ctx := context.Background()
	cfg, err := secrets.ParseArgs(os.Args[1:])

	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	app := secrets.NewApp(cfg)

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

}
