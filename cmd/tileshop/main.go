package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/Simplici0/tileshop/internal/config"
	"github.com/Simplici0/tileshop/internal/session"
)

func newCommand(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "tileshop",
		Usage: "print a tiling materials invoice and the delivery rate table",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log parsed inputs and computed totals to stderr",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load(cmd.Bool("debug"))
			logger := cfg.NewLogger()
			logger.SetOutput(stderr)
			if err := session.Run(ctx, stdin, stdout, cfg, logger); err != nil {
				logger.WithError(err).Error("tileshop stopped")
				return err
			}
			return nil
		},
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newCommand(os.Stdin, os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		os.Exit(1)
	}
}
