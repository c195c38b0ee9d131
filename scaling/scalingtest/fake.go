package scalingtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
	"github.com/aws/smithy-go"
)

// Capacity is a min/max/desired triple recorded by FakeAutoScaling.
type Capacity struct {
	Min, Max, Desired int32
}

// FakeAutoScaling simulates a single Auto Scaling group. Every describe call
// moves the group at most Step instances towards its desired capacity, so a
// scale-up becomes visible over several polls.
type FakeAutoScaling struct {
	// Step is how many instances launch or terminate per describe call. Zero means one.
	Step int

	mu        sync.Mutex
	name      string
	capacity  Capacity
	instances []types.Instance
	nextID    int
	history   []Capacity
	describes int
}

// NewFakeAutoScaling returns a group named name that already runs its desired capacity.
func NewFakeAutoScaling(name string, minSize, maxSize, desired int32) *FakeAutoScaling {
	f := &FakeAutoScaling{name: name, capacity: Capacity{Min: minSize, Max: maxSize, Desired: desired}}
	for i := int32(0); i < desired; i++ {
		f.launch()
	}
	return f
}

// History returns every capacity applied through UpdateAutoScalingGroup, in order.
func (f *FakeAutoScaling) History() []Capacity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Capacity(nil), f.history...)
}

// Current returns the group's capacity.
func (f *FakeAutoScaling) Current() Capacity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.capacity
}

// Describes returns how many times the group was described.
func (f *FakeAutoScaling) Describes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.describes
}

// DescribeAutoScalingGroups implements scaling.AutoScalingAPI.
func (f *FakeAutoScaling) DescribeAutoScalingGroups(
	_ context.Context,
	params *autoscaling.DescribeAutoScalingGroupsInput,
	_ ...func(*autoscaling.Options),
) (*autoscaling.DescribeAutoScalingGroupsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := &autoscaling.DescribeAutoScalingGroupsOutput{}
	if !f.requested(params.AutoScalingGroupNames) {
		return out, nil
	}

	f.describes++
	f.converge()

	out.AutoScalingGroups = []types.AutoScalingGroup{{
		AutoScalingGroupName: aws.String(f.name),
		MinSize:              aws.Int32(f.capacity.Min),
		MaxSize:              aws.Int32(f.capacity.Max),
		DesiredCapacity:      aws.Int32(f.capacity.Desired),
		Instances:            append([]types.Instance(nil), f.instances...),
	}}
	return out, nil
}

// UpdateAutoScalingGroup implements scaling.AutoScalingAPI.
func (f *FakeAutoScaling) UpdateAutoScalingGroup(
	_ context.Context,
	params *autoscaling.UpdateAutoScalingGroupInput,
	_ ...func(*autoscaling.Options),
) (*autoscaling.UpdateAutoScalingGroupOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if aws.ToString(params.AutoScalingGroupName) != f.name {
		return nil, &smithy.GenericAPIError{
			Code:    "ValidationError",
			Message: fmt.Sprintf("AutoScalingGroup name not found - %s", aws.ToString(params.AutoScalingGroupName)),
		}
	}

	next := f.capacity
	if params.MinSize != nil {
		next.Min = *params.MinSize
	}
	if params.MaxSize != nil {
		next.Max = *params.MaxSize
	}
	if params.DesiredCapacity != nil {
		next.Desired = *params.DesiredCapacity
	}
	if next.Min > next.Desired || next.Desired > next.Max {
		return nil, &smithy.GenericAPIError{
			Code:    "ValidationError",
			Message: "Desired capacity must be between min and max size",
		}
	}

	f.capacity = next
	f.history = append(f.history, next)
	return &autoscaling.UpdateAutoScalingGroupOutput{}, nil
}

func (f *FakeAutoScaling) requested(names []string) bool {
	for _, n := range names {
		if n == f.name {
			return true
		}
	}
	return false
}

// converge launches pending instances into service, or terminates extras.
func (f *FakeAutoScaling) converge() {
	step := f.Step
	if step <= 0 {
		step = 1
	}

	// Instances launched on the previous describe enter service now.
	for i := range f.instances {
		if f.instances[i].LifecycleState == types.LifecycleStatePending {
			f.instances[i].LifecycleState = types.LifecycleStateInService
		}
	}

	for i := 0; i < step; i++ {
		switch {
		case int32(len(f.instances)) < f.capacity.Desired:
			f.launchPending()
		case int32(len(f.instances)) > f.capacity.Desired:
			f.instances = f.instances[:len(f.instances)-1]
		}
	}
}

func (f *FakeAutoScaling) launch() {
	f.launchPending()
	f.instances[len(f.instances)-1].LifecycleState = types.LifecycleStateInService
}

func (f *FakeAutoScaling) launchPending() {
	f.nextID++
	f.instances = append(f.instances, types.Instance{
		InstanceId:       aws.String(fmt.Sprintf("i-%017d", f.nextID)),
		LifecycleState:   types.LifecycleStatePending,
		HealthStatus:     aws.String("Healthy"),
		AvailabilityZone: aws.String("us-east-1a"),
		InstanceType:     aws.String("t3.micro"),
	})
}
