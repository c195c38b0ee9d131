// Command scale-asg doubles an Auto Scaling group until the new instances are InService, then restores it.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/cli"
	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/commands/scaleasgcmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := cli.NewDefault()
	code := app.Run(ctx, scaleasgcmd.NewCmd(app), os.Args[1:])

	stop()
	os.Exit(code)
}
