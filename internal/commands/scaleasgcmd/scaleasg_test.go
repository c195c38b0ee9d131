package scaleasgcmd

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/infra/internal/commands/commandtest"
	"github.com/input-output-hk/catalyst-forge-libs/infra/scaling/scalingtest"
)

func TestScaleASG_WrongArgumentCount(t *testing.T) {
	for _, args := range [][]string{{}, {"a", "b"}} {
		env := commandtest.New(t)

		code := env.App.Run(context.Background(), NewCmd(env.App), args)

		assert.Equal(t, 1, code)
		assert.Equal(t, "Usage: scale-asg <autoscaling_group_name>\n", env.Stderr.String())
		assert.Empty(t, env.LoadCalls, "AWS is not touched on a usage error")
	}
}

func TestScaleASG_DoublesThenRestores(t *testing.T) {
	env := commandtest.New(t)
	fake := scalingtest.NewFakeAutoScaling("web-asg", 1, 3, 2)
	env.AutoScaling = fake

	code := env.App.Run(context.Background(), NewCmd(env.App), []string{"web-asg", "--poll-interval", "1ms"})
	require.Equal(t, 0, code, env.Stderr.String())

	assert.Equal(t, []scalingtest.Capacity{
		{Min: 2, Max: 6, Desired: 4},
		{Min: 1, Max: 3, Desired: 2},
	}, fake.History())

	lines := strings.Split(strings.TrimSpace(env.Stdout.String()), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, []string{
		"Current ASG settings: min=1, max=3, desired=2",
		"Scaling up ASG: min=2, max=6, desired=4",
		"Waiting for instances to be InService...",
		"Pending instances: 2 / 4",
		"Pending instances: 3 / 4",
		"Pending instances: 4 / 4",
		"Reverting ASG to original settings: min=1, max=3, desired=2",
	}, lines[:7])
	assert.True(t, strings.HasPrefix(lines[7], "ASG web-asg restored after "))
}

func TestScaleASG_TimeoutStillRestores(t *testing.T) {
	env := commandtest.New(t)
	fake := scalingtest.NewFakeAutoScaling("slow-asg", 2, 4, 2)
	env.AutoScaling = fake

	code := env.App.Run(context.Background(), NewCmd(env.App),
		[]string{"slow-asg", "--poll-interval", "1h", "--timeout", "10ms"})

	assert.Equal(t, 1, code)
	assert.Contains(t, env.Stderr.String(), "timed out")
	assert.Equal(t, scalingtest.Capacity{Min: 2, Max: 4, Desired: 2}, fake.Current())
	assert.Len(t, fake.History(), 2)
	assert.Contains(t, env.Stdout.String(), "Reverting ASG to original settings: min=2, max=4, desired=2")
}

func TestScaleASG_GroupNotFound(t *testing.T) {
	env := commandtest.New(t)

	code := env.App.Run(context.Background(), NewCmd(env.App), []string{"nope"})

	assert.Equal(t, 1, code)
	assert.Contains(t, env.Stderr.String(), "auto scaling group not found")
}

func TestScaleASG_InvalidPollInterval(t *testing.T) {
	env := commandtest.New(t)

	code := env.App.Run(context.Background(), NewCmd(env.App), []string{"web-asg", "--poll-interval", "0s"})

	assert.Equal(t, 1, code)
	assert.Equal(t, "Usage: scale-asg <autoscaling_group_name>\n", env.Stderr.String())
}

func TestScaleASG_ShowInstances(t *testing.T) {
	env := commandtest.New(t)
	env.AutoScaling = scalingtest.NewFakeAutoScaling("web-asg", 0, 1, 1)

	var requested []string
	env.EC2 = &scalingtest.MockEC2{
		DescribeInstancesFunc: func(_ context.Context, params *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
			requested = params.InstanceIds
			out := &ec2.DescribeInstancesOutput{}
			for _, id := range params.InstanceIds {
				out.Reservations = append(out.Reservations, ec2types.Reservation{Instances: []ec2types.Instance{{
					InstanceId:       aws.String(id),
					InstanceType:     ec2types.InstanceTypeT3Micro,
					PrivateIpAddress: aws.String("10.0.0.10"),
				}}})
			}
			return out, nil
		},
	}

	code := env.App.Run(context.Background(), NewCmd(env.App),
		[]string{"web-asg", "--poll-interval", "1ms", "--show-instances"})
	require.Equal(t, 0, code, env.Stderr.String())

	assert.Len(t, requested, 2)
	assert.Contains(t, env.Stdout.String(), "10.0.0.10")
	assert.Contains(t, env.Stdout.String(), requested[0])
}

func TestScaleASG_PassesAWSFlags(t *testing.T) {
	env := commandtest.New(t)
	env.AutoScaling = scalingtest.NewFakeAutoScaling("web-asg", 0, 0, 0)

	code := env.App.Run(context.Background(), NewCmd(env.App), []string{
		"web-asg",
		"--region", "ap-southeast-2",
		"--profile", "ops",
		"--endpoint-url", "http://localhost:4566",
		"--max-retries", "7",
	})
	require.Equal(t, 0, code, env.Stderr.String())

	require.Len(t, env.LoadCalls, 1)
	opts := env.LoadCalls[0]
	assert.Equal(t, "ap-southeast-2", opts.Region)
	assert.Equal(t, "ops", opts.Profile)
	assert.Equal(t, "http://localhost:4566", opts.Endpoint)
	assert.Equal(t, 7, opts.MaxRetries)
	assert.NotNil(t, opts.Logger)
}
