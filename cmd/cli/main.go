package main

import (
	"context"
	"log"
	"os"

	"github.com/verdantly/verdantly/internal/buildinfo"
	"github.com/verdantly/verdantly/internal/client/cli"
	"github.com/verdantly/verdantly/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
