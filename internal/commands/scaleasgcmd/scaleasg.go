// Package scaleasgcmd implements the scale-asg command.
package scaleasgcmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/cli"
	"github.com/input-output-hk/catalyst-forge-libs/infra/scaling"
)

const (
	flagPollInterval  = "poll-interval"
	flagTimeout       = "timeout"
	flagShowInstances = "show-instances"
)

// NewCmd returns the scale-asg command.
func NewCmd(app *cli.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scale-asg <autoscaling_group_name>",
		Short: "Temporarily double an Auto Scaling group",
		Long: `Double the min, max and desired capacity of an Auto Scaling group, wait
until the doubled number of instances is InService, then restore the
original capacity.

The original capacity is restored even when the wait is interrupted or
times out.`,
		Args: cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), app, args[0])
		},
	}

	app.Setup(cmd)
	cmd.Flags().Duration(flagPollInterval, scaling.DefaultPollInterval, "time between InService checks")
	cmd.Flags().Duration(flagTimeout, 0, "give up waiting after this long (0 waits until interrupted)")
	cmd.Flags().Bool(flagShowInstances, false, "list the InService instances once the group has scaled up")

	return cmd
}

func run(ctx context.Context, app *cli.App, group string) error {
	v := app.Viper
	interval := v.GetDuration(flagPollInterval)
	if interval <= 0 {
		return &cli.UsageError{Err: fmt.Errorf("--%s must be positive, got %s", flagPollInterval, interval)}
	}
	timeout := v.GetDuration(flagTimeout)
	if timeout < 0 {
		return &cli.UsageError{Err: fmt.Errorf("--%s must not be negative, got %s", flagTimeout, timeout)}
	}

	awsCfg, err := app.AWSConfig(ctx)
	if err != nil {
		return err
	}

	ux := app.UX
	waiting := false
	client := app.NewScaling(awsCfg,
		scaling.WithLogger(app.Log.Named("scaling")),
		scaling.WithPollInterval(interval),
		scaling.WithTimeout(timeout),
		scaling.WithHooks(scaling.Hooks{
			Current: func(c scaling.Capacity) {
				ux.PrintToUser("Current ASG settings: %s", c)
			},
			ScaleUp: func(c scaling.Capacity) {
				ux.PrintToUser("Scaling up ASG: %s", c)
			},
			Poll: func(inService, desired int32) {
				if !waiting {
					ux.PrintToUser("Waiting for instances to be InService...")
					waiting = true
				}
				ux.PrintToUser("Pending instances: %d / %d", inService, desired)
			},
			Revert: func(c scaling.Capacity) {
				ux.PrintToUser("Reverting ASG to original settings: %s", c)
			},
		}),
	)

	result, err := client.Pulse(ctx, group)
	if result != nil {
		app.Log.Info("pulse finished",
			zap.String("group", group),
			zap.Duration("elapsed", result.Elapsed),
			zap.Int("inService", len(result.InService)),
		)
	}
	if err != nil {
		return err
	}

	if v.GetBool(flagShowInstances) {
		if err := printInstances(ctx, app, client, result.InService); err != nil {
			app.Log.Warn("could not describe instances", zap.Error(err))
		}
	}

	ux.PrintToUser("ASG %s restored after %s", group, result.Elapsed.Round(time.Second))
	return nil
}

func printInstances(ctx context.Context, app *cli.App, client *scaling.Client, ids []string) error {
	details, err := client.Instances(ctx, ids)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(details))
	for _, d := range details {
		launched := ""
		if !d.LaunchTime.IsZero() {
			launched = d.LaunchTime.UTC().Format(time.RFC3339)
		}
		rows = append(rows, []string{d.ID, d.Type, d.State, d.AvailabilityZone, d.PrivateIP, d.PublicIP, launched})
	}
	return app.UX.PrintTable([]string{"Instance", "Type", "State", "AZ", "Private IP", "Public IP", "Launched"}, rows)
}
