package main

import (
	"context"
	"fmt"
	"github.com/urfave/cli/v3"
	"meetup/internal/di"
	"meetup/internal/structures"
	"os"
)

func main() {
	cmd := &cli.Command{
		Name:  "meetupd",
		Usage: "Serve club and thunder rosters, recent lists and filters",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config/config.yml",
				Usage:   "Path to the YAML config file",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Mirror logs to stderr",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			app, cleanup, err := di.InitApp(&structures.CliFlags{
				ConfigPath: c.String("config"),
				DebugMode:  c.Bool("debug"),
			})
			if err != nil {
				return err
			}
			defer cleanup()
			return app.Run(ctx)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "meetupd: %v\n", err)
		os.Exit(1)
	}
}
