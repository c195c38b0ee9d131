// Package scalingtest provides test doubles for the scaling package.
package scalingtest

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// MockAutoScaling mocks scaling.AutoScalingAPI through function fields.
// Unset fields return an empty output.
type MockAutoScaling struct {
	DescribeAutoScalingGroupsFunc func(
		context.Context, *autoscaling.DescribeAutoScalingGroupsInput, ...func(*autoscaling.Options),
	) (*autoscaling.DescribeAutoScalingGroupsOutput, error)
	UpdateAutoScalingGroupFunc func(
		context.Context, *autoscaling.UpdateAutoScalingGroupInput, ...func(*autoscaling.Options),
	) (*autoscaling.UpdateAutoScalingGroupOutput, error)

	mu      sync.Mutex
	updates []*autoscaling.UpdateAutoScalingGroupInput
}

// DescribeAutoScalingGroups mocks the Auto Scaling DescribeAutoScalingGroups operation.
func (m *MockAutoScaling) DescribeAutoScalingGroups(
	ctx context.Context,
	params *autoscaling.DescribeAutoScalingGroupsInput,
	optFns ...func(*autoscaling.Options),
) (*autoscaling.DescribeAutoScalingGroupsOutput, error) {
	if m.DescribeAutoScalingGroupsFunc != nil {
		return m.DescribeAutoScalingGroupsFunc(ctx, params, optFns...)
	}
	return &autoscaling.DescribeAutoScalingGroupsOutput{}, nil
}

// UpdateAutoScalingGroup mocks the Auto Scaling UpdateAutoScalingGroup operation.
// Every call is recorded and available through Updates.
func (m *MockAutoScaling) UpdateAutoScalingGroup(
	ctx context.Context,
	params *autoscaling.UpdateAutoScalingGroupInput,
	optFns ...func(*autoscaling.Options),
) (*autoscaling.UpdateAutoScalingGroupOutput, error) {
	m.mu.Lock()
	m.updates = append(m.updates, params)
	m.mu.Unlock()

	if m.UpdateAutoScalingGroupFunc != nil {
		return m.UpdateAutoScalingGroupFunc(ctx, params, optFns...)
	}
	return &autoscaling.UpdateAutoScalingGroupOutput{}, nil
}

// Updates returns the inputs of every UpdateAutoScalingGroup call, in order.
func (m *MockAutoScaling) Updates() []*autoscaling.UpdateAutoScalingGroupInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*autoscaling.UpdateAutoScalingGroupInput(nil), m.updates...)
}

// MockEC2 mocks scaling.EC2API.
type MockEC2 struct {
	DescribeInstancesFunc func(
		context.Context, *ec2.DescribeInstancesInput, ...func(*ec2.Options),
	) (*ec2.DescribeInstancesOutput, error)
}

// DescribeInstances mocks the EC2 DescribeInstances operation.
func (m *MockEC2) DescribeInstances(
	ctx context.Context,
	params *ec2.DescribeInstancesInput,
	optFns ...func(*ec2.Options),
) (*ec2.DescribeInstancesOutput, error) {
	if m.DescribeInstancesFunc != nil {
		return m.DescribeInstancesFunc(ctx, params, optFns...)
	}
	return &ec2.DescribeInstancesOutput{}, nil
}
