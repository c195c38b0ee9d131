// Package cli holds what the command binaries share: flag and environment
// configuration, logging, user-facing output and exit code handling.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/awsconfig"
	"github.com/input-output-hk/catalyst-forge-libs/infra/scaling"
	"github.com/input-output-hk/catalyst-forge-libs/infra/storage"
)

// App carries the state of one command invocation.
type App struct {
	Out io.Writer
	Err io.Writer

	Log    *zap.Logger
	UX     *UserLog
	Viper  *viper.Viper
	Config Config

	// Factories for AWS clients. Tests replace them with fakes.
	LoadAWS    func(ctx context.Context, opts awsconfig.Options) (aws.Config, error)
	NewStorage func(cfg aws.Config, opts ...storage.Option) *storage.Client
	NewScaling func(cfg aws.Config, opts ...scaling.Option) *scaling.Client
	NewSTS     func(cfg aws.Config) awsconfig.STSAPI

	// Confirm asks the user a yes/no question.
	Confirm func(label string) (bool, error)
}

// New returns an App writing to stdout and stderr, wired to the real AWS SDK.
func New(stdout, stderr io.Writer) *App {
	return &App{
		Out:        stdout,
		Err:        stderr,
		Log:        zap.NewNop(),
		UX:         NewUserLog(nil, stdout),
		Viper:      NewViper(),
		Config:     Config{LogLevel: DefaultLogLevel},
		LoadAWS:    awsconfig.Load,
		NewStorage: storage.New,
		NewScaling: scaling.New,
		NewSTS: func(cfg aws.Config) awsconfig.STSAPI {
			return awsconfig.NewSTS(cfg)
		},
		Confirm: PromptConfirm,
	}
}

// NewDefault returns an App on the process's stdout and stderr.
func NewDefault() *App {
	return New(os.Stdout, os.Stderr)
}

// UsageError reports a command line that does not match the command's usage.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ExactArgs accepts exactly n positional arguments.
func ExactArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return &UsageError{Err: fmt.Errorf("accepts %d arg(s), received %d", n, len(args))}
		}
		return nil
	}
}

// Setup registers the global flags on cmd and makes it load configuration
// and logging before it runs.
func (a *App) Setup(cmd *cobra.Command) {
	AddGlobalFlags(cmd.Flags())

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetOut(a.Out)
	cmd.SetErr(a.Err)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.init(cmd)
	}
}

func (a *App) init(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.Viper, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := NewLogger(a.Err, cfg.LogLevel)
	if err != nil {
		return err
	}

	a.Config = cfg
	a.Log = logger.Named(cmd.Name())
	a.UX = NewUserLog(a.Log, a.Out)
	return nil
}

// AWSConfig loads the AWS configuration for the current settings.
func (a *App) AWSConfig(ctx context.Context) (aws.Config, error) {
	cfg, err := a.LoadAWS(ctx, a.Config.AWSOptions(a.Log))
	if err != nil {
		return aws.Config{}, err
	}
	a.Log.Debug("loaded AWS config", zap.String("region", cfg.Region), zap.String("endpoint", a.Config.Endpoint))
	return cfg, nil
}

// Storage returns a storage client for cfg honouring the path-style setting.
func (a *App) Storage(cfg aws.Config) *storage.Client {
	return a.NewStorage(cfg,
		storage.WithLogger(a.Log.Named("storage")),
		storage.WithRegion(cfg.Region),
		storage.WithForcePathStyle(a.Config.PathStyle),
	)
}

// Run executes cmd with args and returns the process exit code. A usage
// error prints the usage line to stderr; any other error is logged.
func (a *App) Run(ctx context.Context, cmd *cobra.Command, args []string) int {
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	defer func() { _ = a.Log.Sync() }()

	if err == nil {
		return 0
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		_, _ = fmt.Fprintf(a.Err, "Usage: %s\n", cmd.Use)
		a.Log.Debug("invalid usage", zap.Error(err))
		return 1
	}

	if a.Log.Core().Enabled(zap.ErrorLevel) {
		a.Log.Error("command failed", zap.Error(err))
	} else {
		_, _ = fmt.Fprintf(a.Err, "Error: %v\n", err)
	}
	return 1
}
