// Command delete-bucket empties and deletes S3 buckets.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/cli"
	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/commands/deletebucketcmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := cli.NewDefault()
	code := app.Run(ctx, deletebucketcmd.NewCmd(app), os.Args[1:])

	stop()
	os.Exit(code)
}
