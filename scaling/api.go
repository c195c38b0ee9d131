package scaling

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// AutoScalingAPI is the subset of the Auto Scaling client used by this package.
type AutoScalingAPI interface {
	// DescribeAutoScalingGroups returns capacity and instances of the named groups
	DescribeAutoScalingGroups(
		ctx context.Context,
		params *autoscaling.DescribeAutoScalingGroupsInput,
		optFns ...func(*autoscaling.Options),
	) (*autoscaling.DescribeAutoScalingGroupsOutput, error)

	// UpdateAutoScalingGroup changes min, max and desired capacity
	UpdateAutoScalingGroup(
		ctx context.Context,
		params *autoscaling.UpdateAutoScalingGroupInput,
		optFns ...func(*autoscaling.Options),
	) (*autoscaling.UpdateAutoScalingGroupOutput, error)
}

// EC2API is the subset of the EC2 client used by this package.
type EC2API interface {
	// DescribeInstances returns details of EC2 instances
	DescribeInstances(
		ctx context.Context,
		params *ec2.DescribeInstancesInput,
		optFns ...func(*ec2.Options),
	) (*ec2.DescribeInstancesOutput, error)
}

var (
	_ AutoScalingAPI = (*autoscaling.Client)(nil)
	_ EC2API         = (*ec2.Client)(nil)
)
