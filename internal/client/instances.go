package client

import (
	"context"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
)

// InstancesClient reads instance statistics.
type InstancesClient struct {
	core *core
}

func newInstancesClient(shared *core) *InstancesClient {
	return &InstancesClient{core: shared}
}

// Statistics returns resource usage of one instance.
func (c *InstancesClient) Statistics(ctx context.Context, companyName, instanceID string) (giantswarm.InstanceStatistics, error) {
	data, err := c.core.read(ctx,
		cacheKey(constants.CacheKeyInstanceStats, companyName, instanceID),
		resourcePath("company", companyName, "instance", instanceID, "stats"))
	if err != nil {
		return giantswarm.InstanceStatistics{}, err
	}

	return giantswarm.InstanceStatistics{
		Component:          data.Get("ComponentName").String(),
		MemoryUsageMB:      data.Get("MemoryUsageMb").Float(),
		MemoryCapacityMB:   data.Get("MemoryCapacityMb").Float(),
		MemoryUsagePercent: data.Get("MemoryUsagePercent").Float(),
		CPUUsagePercent:    data.Get("CpuUsagePercent").Float(),
	}, nil
}
