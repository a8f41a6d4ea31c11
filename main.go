package main

import (
	"context"
	"fmt"
	"os"

	"recipe-service/config"
	"recipe-service/server"

	"github.com/umakantv/go-utils/db/migrations"
	"github.com/urfave/cli/v3"
)

func startAction(ctx context.Context, _ *cli.Command) error {
	server.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return server.StartServer(ctx, cfg)
}

func main() {
	cmd := &cli.Command{
		Name:   "recipe-service",
		Usage:  "Recipes and ratings REST API",
		Action: startAction,
		Commands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Serve the HTTP API",
				Action: startAction,
			},
			{
				Name:  "setup-tables",
				Usage: "Create the recipes and ratings tables, apply migrations and exit",
				Action: func(ctx context.Context, _ *cli.Command) error {
					server.InitLogger()

					cfg, err := config.Parse()
					if err != nil {
						return err
					}
					if err := cfg.Database.Validate(); err != nil {
						return err
					}
					return server.SetupTables(ctx, cfg.Database)
				},
			},
			{
				Name:  "create-migration",
				Usage: "Write an empty timestamped .sql migration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Migration name (alphanum+underscore only)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "dir",
						Value: "./database/migrations",
						Usage: "Target directory for the new .sql file",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					name := cmd.String("name")
					dir := cmd.String("dir")
					migrations.CreateMigration(&name, &dir)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
