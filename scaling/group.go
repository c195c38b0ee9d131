package scaling

import (
	"fmt"
	"math"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
)

// LifecycleInService is the lifecycle state of an instance serving traffic.
const LifecycleInService = string(types.LifecycleStateInService)

// Capacity is the min/max/desired triple of an Auto Scaling group.
type Capacity struct {
	Min     int32
	Max     int32
	Desired int32
}

// Double returns the capacity with every field multiplied by two.
func (c Capacity) Double() (Capacity, error) {
	if c.Min < 0 || c.Max < 0 || c.Desired < 0 {
		return Capacity{}, fmt.Errorf("%w: negative value in %s", ErrInvalidCapacity, c)
	}
	const limit = math.MaxInt32 / 2
	if c.Min > limit || c.Max > limit || c.Desired > limit {
		return Capacity{}, fmt.Errorf("%w: doubling %s overflows", ErrInvalidCapacity, c)
	}
	return Capacity{Min: c.Min * 2, Max: c.Max * 2, Desired: c.Desired * 2}, nil
}

func (c Capacity) String() string {
	return fmt.Sprintf("min=%d, max=%d, desired=%d", c.Min, c.Max, c.Desired)
}

// Instance is a member of an Auto Scaling group.
type Instance struct {
	ID               string
	LifecycleState   string
	HealthStatus     string
	AvailabilityZone string
	InstanceType     string
}

// InService reports whether the instance is serving traffic.
func (i Instance) InService() bool {
	return i.LifecycleState == LifecycleInService
}

// Group is a snapshot of an Auto Scaling group.
type Group struct {
	Name      string
	Capacity  Capacity
	Instances []Instance
}

// InService returns the instances whose lifecycle state is InService.
func (g *Group) InService() []Instance {
	var out []Instance
	for _, inst := range g.Instances {
		if inst.InService() {
			out = append(out, inst)
		}
	}
	return out
}

// InstanceDetail is the EC2 view of an instance.
type InstanceDetail struct {
	ID               string
	Type             string
	State            string
	PrivateIP        string
	PublicIP         string
	AvailabilityZone string
	LaunchTime       time.Time
}

// PulseResult describes a completed scale-up and revert.
type PulseResult struct {
	Group    string
	Original Capacity
	Scaled   Capacity

	// InService holds the IDs of the instances that were InService when the wait ended.
	InService []string

	// Elapsed is how long the wait for InService took.
	Elapsed time.Duration
}

func groupFromAPI(g types.AutoScalingGroup) *Group {
	group := &Group{
		Name: aws.ToString(g.AutoScalingGroupName),
		Capacity: Capacity{
			Min:     aws.ToInt32(g.MinSize),
			Max:     aws.ToInt32(g.MaxSize),
			Desired: aws.ToInt32(g.DesiredCapacity),
		},
	}
	for _, inst := range g.Instances {
		group.Instances = append(group.Instances, Instance{
			ID:               aws.ToString(inst.InstanceId),
			LifecycleState:   string(inst.LifecycleState),
			HealthStatus:     aws.ToString(inst.HealthStatus),
			AvailabilityZone: aws.ToString(inst.AvailabilityZone),
			InstanceType:     aws.ToString(inst.InstanceType),
		})
	}
	return group
}
