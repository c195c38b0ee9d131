// Package deletebucketcmd implements the delete-bucket command.
package deletebucketcmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/awsconfig"
	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/cli"
	"github.com/input-output-hk/catalyst-forge-libs/infra/storage"
	"github.com/input-output-hk/catalyst-forge-libs/infra/teardown"
)

const (
	flagAll    = "all"
	flagPrefix = "prefix"
	flagYes    = "yes"
	flagDryRun = "dry-run"
)

// NewCmd returns the delete-bucket command.
func NewCmd(app *cli.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete-bucket <bucket-name>",
		Short: "Empty and delete S3 buckets",
		Long: `Empty an S3 bucket and delete it.

With --all, every bucket in the account is emptied and deleted instead,
optionally only those whose name starts with --prefix. The buckets are listed
and a confirmation is requested unless --yes is given.`,
		Example: `  delete-bucket my-old-bucket
  delete-bucket --all --prefix devops-exam- --dry-run`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all, _ := cmd.Flags().GetBool(flagAll); all {
				return cli.ExactArgs(0)(cmd, args)
			}
			return cli.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readOptions(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), app, opts, args)
		},
	}

	app.Setup(cmd)
	cmd.Flags().Bool(flagAll, false, "delete every bucket in the account")
	cmd.Flags().String(flagPrefix, "", "with --all, only delete buckets whose name starts with this prefix")
	cmd.Flags().BoolP(flagYes, "y", false, "do not ask for confirmation")
	cmd.Flags().Bool(flagDryRun, false, "list what would be deleted without deleting anything")

	return cmd
}

// options are the command's own flags, read from the command line only and
// never from the environment or a config file.
type options struct {
	all    bool
	prefix string
	yes    bool
	dryRun bool
}

func readOptions(cmd *cobra.Command) (options, error) {
	flags := cmd.Flags()

	var (
		opts options
		err  error
	)
	if opts.all, err = flags.GetBool(flagAll); err != nil {
		return opts, err
	}
	if opts.prefix, err = flags.GetString(flagPrefix); err != nil {
		return opts, err
	}
	if opts.yes, err = flags.GetBool(flagYes); err != nil {
		return opts, err
	}
	if opts.dryRun, err = flags.GetBool(flagDryRun); err != nil {
		return opts, err
	}

	if opts.prefix != "" && !opts.all {
		return opts, &cli.UsageError{Err: fmt.Errorf("--%s requires --%s", flagPrefix, flagAll)}
	}
	return opts, nil
}

func run(ctx context.Context, app *cli.App, opts options, args []string) error {
	all, dryRun, prefix := opts.all, opts.dryRun, opts.prefix

	awsCfg, err := app.AWSConfig(ctx)
	if err != nil {
		return err
	}

	account := "unknown"
	if id, err := awsconfig.CallerIdentity(ctx, app.NewSTS(awsCfg)); err != nil {
		app.Log.Warn("could not determine AWS account", zap.Error(err))
	} else {
		account = id.Account
		app.Log.Info("resolved caller identity", zap.String("account", id.Account), zap.String("arn", id.ARN))
	}

	remover := teardown.New(app.Storage(awsCfg),
		teardown.WithLogger(app.Log.Named("teardown")),
		teardown.WithPrefix(prefix),
		teardown.WithDryRun(dryRun),
		teardown.WithProgress(func(bucket string) {
			if dryRun {
				app.UX.PrintToUser("Would delete bucket: %s", bucket)
				return
			}
			app.UX.PrintToUser("Deleting bucket: %s", bucket)
		}),
	)

	names := args
	if all {
		buckets, err := remover.Candidates(ctx)
		if err != nil {
			return err
		}
		if len(buckets) == 0 {
			app.UX.PrintToUser("No buckets to delete in account %s", account)
			return nil
		}
		if err := printBuckets(app.UX, buckets); err != nil {
			return err
		}

		if !dryRun && !opts.yes {
			ok, err := app.Confirm(fmt.Sprintf("Delete %d bucket(s) and all their objects in account %s", len(buckets), account))
			if err != nil {
				return err
			}
			if !ok {
				app.UX.PrintToUser("Aborted, nothing was deleted")
				return nil
			}
		}

		names = make([]string, 0, len(buckets))
		for _, b := range buckets {
			names = append(names, b.Name)
		}
	}

	result, err := remover.Delete(ctx, names...)
	if result != nil && !dryRun {
		app.UX.PrintToUser("Deleted %d bucket(s) and %d object(s)", len(result.Deleted), result.Objects)
	}
	return err
}

func printBuckets(ux *cli.UserLog, buckets []storage.Bucket) error {
	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		created := ""
		if !b.CreatedAt.IsZero() {
			created = b.CreatedAt.UTC().Format(time.RFC3339)
		}
		rows = append(rows, []string{b.Name, b.Region, created})
	}
	return ux.PrintTable([]string{"Bucket", "Region", "Created"}, rows)
}
