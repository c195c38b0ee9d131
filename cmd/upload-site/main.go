// Command upload-site publishes a local folder as an S3 static website.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/cli"
	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/commands/uploadsitecmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := cli.NewDefault()
	code := app.Run(ctx, uploadsitecmd.NewCmd(app), os.Args[1:])

	stop()
	os.Exit(code)
}
