package compiler

import "github.com/TeddyRux/marathon/domain"

// buildTask compiles one container into its task descriptor. All tasks
// of a placement share the pod's instance identity; the task is
// distinguished by its container name.
func (pc *PlacementCompiler) buildTask(pod *domain.PodSpec, c *domain.ContainerSpec, instanceID domain.InstanceID, host string, resolved []resolvedEndpoint, portEnv map[string]string) domain.TaskDescriptor {
	resources := []domain.Resource{
		domain.ScalarResource(domain.ResourceCPUs, c.Resources.CPUs),
		domain.ScalarResource(domain.ResourceMem, c.Resources.Mem),
		domain.ScalarResource(domain.ResourceDisk, c.Resources.Disk),
		// GPUs are declared as a count but travel as a scalar.
		domain.ScalarResource(domain.ResourceGPUs, float64(c.Resources.GPUs)),
	}

	task := domain.TaskDescriptor{
		Name:      c.Name,
		TaskID:    instanceID.String(),
		AgentHost: host,
		Resources: resources,
		Command:   pc.buildCommand(pod, c, instanceID, host, portEnv),
		Container: buildContainer(pod, c),
	}

	if merged := mergeLabels(pod.Labels, c.Labels); len(merged) > 0 {
		task.Labels = merged
	}

	if c.HealthCheck != nil {
		hc := buildHealthCheck(c, resolved)
		task.HealthCheck = &hc
	}

	return task
}

// mergeLabels overlays container labels on pod labels; the container
// wins on key collision.
func mergeLabels(pod, container map[string]string) map[string]string {
	merged := make(map[string]string, len(pod)+len(container))
	for k, v := range pod {
		merged[k] = v
	}
	for k, v := range container {
		merged[k] = v
	}
	return merged
}
