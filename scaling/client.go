// Package scaling reads and changes the capacity of EC2 Auto Scaling groups.
//
// Its main operation is Pulse: double a group's capacity, wait until the
// doubled desired count of instances is InService, then put the original
// capacity back. The revert runs even when the wait fails.
package scaling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"go.uber.org/zap"
)

// Client talks to the Auto Scaling and EC2 APIs.
type Client struct {
	asg      AutoScalingAPI
	ec2      EC2API
	logger   *zap.Logger
	interval time.Duration
	timeout  time.Duration
	hooks    Hooks
}

// New creates a Client from an AWS configuration.
func New(cfg aws.Config, opts ...Option) *Client {
	return NewWithClients(autoscaling.NewFromConfig(cfg), ec2.NewFromConfig(cfg), opts...)
}

// NewWithClients creates a Client around custom API implementations.
// ec2API may be nil when Instances is never called.
func NewWithClients(asgAPI AutoScalingAPI, ec2API EC2API, opts ...Option) *Client {
	c := &Client{
		asg:      asgAPI,
		ec2:      ec2API,
		logger:   zap.NewNop(),
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Describe returns a snapshot of the named group.
func (c *Client) Describe(ctx context.Context, name string) (*Group, error) {
	if name == "" {
		return nil, newError("describe", name, ErrGroupNotFound)
	}

	out, err := c.asg.DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
		AutoScalingGroupNames: []string{name},
	})
	if err != nil {
		return nil, newError("describe", name, convertAWSError(err))
	}

	for _, g := range out.AutoScalingGroups {
		if aws.ToString(g.AutoScalingGroupName) == name {
			return groupFromAPI(g), nil
		}
	}

	return nil, newError("describe", name, ErrGroupNotFound)
}

// SetCapacity applies min, max and desired capacity to the group in one update.
func (c *Client) SetCapacity(ctx context.Context, name string, capacity Capacity) error {
	if capacity.Min > capacity.Desired || capacity.Desired > capacity.Max {
		return newError("setCapacity", name,
			fmt.Errorf("%w: want min <= desired <= max, got %s", ErrInvalidCapacity, capacity))
	}

	_, err := c.asg.UpdateAutoScalingGroup(ctx, &autoscaling.UpdateAutoScalingGroupInput{
		AutoScalingGroupName: aws.String(name),
		MinSize:              aws.Int32(capacity.Min),
		MaxSize:              aws.Int32(capacity.Max),
		DesiredCapacity:      aws.Int32(capacity.Desired),
	})
	if err != nil {
		return newError("setCapacity", name, convertAWSError(err))
	}

	c.logger.Info("updated auto scaling group",
		zap.String("group", name),
		zap.Int32("min", capacity.Min),
		zap.Int32("max", capacity.Max),
		zap.Int32("desired", capacity.Desired),
	)
	return nil
}

// WaitInService polls the group until at least desired instances are InService.
func (c *Client) WaitInService(ctx context.Context, name string, desired int32) error {
	_, err := c.waitInService(ctx, name, desired)
	return err
}

func (c *Client) waitInService(ctx context.Context, name string, desired int32) (*Group, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, c.timeout, ErrWaitTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		group, err := c.Describe(ctx, name)
		if err != nil {
			if cause := context.Cause(ctx); errors.Is(cause, ErrWaitTimeout) {
				return nil, newError("waitInService", name, cause)
			}
			return nil, err
		}

		inService := int32(len(group.InService()))
		if c.hooks.Poll != nil {
			c.hooks.Poll(inService, desired)
		}
		c.logger.Debug("polled auto scaling group",
			zap.String("group", name),
			zap.Int32("inService", inService),
			zap.Int32("desired", desired),
		)

		if inService >= desired {
			return group, nil
		}

		select {
		case <-ctx.Done():
			return nil, newError("waitInService", name, context.Cause(ctx))
		case <-ticker.C:
		}
	}
}

// Pulse doubles the group's capacity, waits for the doubled desired count
// to be InService, then restores the exact original capacity.
//
// The restore is attempted whenever the scale-up was applied, using a
// context that is not cancelled with ctx. A failed wait and a failed restore
// are both reported through errors.Join.
func (c *Client) Pulse(ctx context.Context, name string) (*PulseResult, error) {
	group, err := c.Describe(ctx, name)
	if err != nil {
		return nil, err
	}

	original := group.Capacity
	if c.hooks.Current != nil {
		c.hooks.Current(original)
	}

	scaled, err := original.Double()
	if err != nil {
		return nil, newError("pulse", name, err)
	}
	if c.hooks.ScaleUp != nil {
		c.hooks.ScaleUp(scaled)
	}

	if err := c.SetCapacity(ctx, name, scaled); err != nil {
		return nil, err
	}

	result := &PulseResult{Group: name, Original: original, Scaled: scaled}

	start := time.Now()
	final, waitErr := c.waitInService(ctx, name, scaled.Desired)
	result.Elapsed = time.Since(start)
	if final != nil {
		for _, inst := range final.InService() {
			result.InService = append(result.InService, inst.ID)
		}
	}

	if c.hooks.Revert != nil {
		c.hooks.Revert(original)
	}

	restoreCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), restoreTimeout)
	defer cancel()

	restoreErr := c.SetCapacity(restoreCtx, name, original)
	if restoreErr != nil {
		c.logger.Error("failed to restore auto scaling group",
			zap.String("group", name),
			zap.Stringer("capacity", original),
			zap.Error(restoreErr),
		)
	}

	if err := errors.Join(waitErr, restoreErr); err != nil {
		return result, err
	}
	return result, nil
}
