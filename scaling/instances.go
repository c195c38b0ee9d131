package scaling

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Instances returns EC2 details for the given instance IDs.
func (c *Client) Instances(ctx context.Context, ids []string) ([]InstanceDetail, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if c.ec2 == nil {
		return nil, newError("instances", "", errors.New("no EC2 client configured"))
	}

	var details []InstanceDetail
	paginator := ec2.NewDescribeInstancesPaginator(c.ec2, &ec2.DescribeInstancesInput{InstanceIds: ids})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, newError("instances", "", convertAWSError(err))
		}

		for _, reservation := range page.Reservations {
			for _, inst := range reservation.Instances {
				details = append(details, instanceDetail(inst))
			}
		}
	}

	return details, nil
}

func instanceDetail(inst types.Instance) InstanceDetail {
	detail := InstanceDetail{
		ID:         aws.ToString(inst.InstanceId),
		Type:       string(inst.InstanceType),
		PrivateIP:  aws.ToString(inst.PrivateIpAddress),
		PublicIP:   aws.ToString(inst.PublicIpAddress),
		LaunchTime: aws.ToTime(inst.LaunchTime),
	}
	if inst.State != nil {
		detail.State = string(inst.State.Name)
	}
	if inst.Placement != nil {
		detail.AvailabilityZone = aws.ToString(inst.Placement.AvailabilityZone)
	}
	return detail
}
