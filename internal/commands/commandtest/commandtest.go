// Package commandtest builds cli.App instances backed by in-memory AWS fakes.
package commandtest

import (
	"bytes"
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/awsconfig"
	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/cli"
	"github.com/input-output-hk/catalyst-forge-libs/infra/scaling"
	"github.com/input-output-hk/catalyst-forge-libs/infra/scaling/scalingtest"
	"github.com/input-output-hk/catalyst-forge-libs/infra/storage"
	"github.com/input-output-hk/catalyst-forge-libs/infra/storage/storagetest"
)

// Region is the region every fake AWS config reports.
const Region = "eu-west-1"

// Account is the account ID returned by the fake STS.
const Account = "123456789012"

// Env is a cli.App wired to fakes, with captured output.
type Env struct {
	App    *cli.App
	Stdout *bytes.Buffer
	Stderr *bytes.Buffer

	S3          *storagetest.FakeS3
	AutoScaling scaling.AutoScalingAPI
	EC2         scaling.EC2API

	// LoadCalls records every AWS config load.
	LoadCalls []awsconfig.Options

	// Answers are returned by successive confirmation prompts.
	Answers []bool

	// Prompts records every confirmation label shown.
	Prompts []string
}

// New returns an Env with an empty FakeS3 and a single-instance Auto Scaling group.
func New(t *testing.T) *Env {
	t.Helper()

	env := &Env{
		Stdout:      &bytes.Buffer{},
		Stderr:      &bytes.Buffer{},
		S3:          storagetest.NewFakeS3(),
		AutoScaling: scalingtest.NewFakeAutoScaling("default-asg", 1, 1, 1),
		EC2:         &scalingtest.MockEC2{},
	}

	app := cli.New(env.Stdout, env.Stderr)
	app.LoadAWS = func(_ context.Context, opts awsconfig.Options) (aws.Config, error) {
		env.LoadCalls = append(env.LoadCalls, opts)
		return aws.Config{Region: Region}, nil
	}
	app.NewStorage = func(_ aws.Config, opts ...storage.Option) *storage.Client {
		return storage.NewWithClient(env.S3, opts...)
	}
	app.NewScaling = func(_ aws.Config, opts ...scaling.Option) *scaling.Client {
		return scaling.NewWithClients(env.AutoScaling, env.EC2, opts...)
	}
	app.NewSTS = func(aws.Config) awsconfig.STSAPI {
		return stubSTS{}
	}
	app.Confirm = func(label string) (bool, error) {
		env.Prompts = append(env.Prompts, label)
		if len(env.Answers) == 0 {
			t.Fatalf("unexpected confirmation prompt: %s", label)
		}
		answer := env.Answers[0]
		env.Answers = env.Answers[1:]
		return answer, nil
	}

	env.App = app
	return env
}

type stubSTS struct{}

func (stubSTS) GetCallerIdentity(
	context.Context,
	*sts.GetCallerIdentityInput,
	...func(*sts.Options),
) (*sts.GetCallerIdentityOutput, error) {
	return &sts.GetCallerIdentityOutput{
		Account: aws.String(Account),
		Arn:     aws.String("arn:aws:iam::" + Account + ":user/ops"),
		UserId:  aws.String("AIDAEXAMPLE"),
	}, nil
}
