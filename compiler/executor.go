package compiler

import (
	"sort"

	"github.com/TeddyRux/marathon/domain"
)

// Baseline executor reservation, charged on top of the containers' own
// resources.
const (
	DefaultExecutorCPUs = 0.1
	DefaultExecutorMem  = 32.0

	executorIDPrefix = "marathon-"
)

// buildExecutor builds the single shared executor descriptor of a
// placement: baseline scalars plus the match's port resources, one
// network attachment per named container-mode pod network, and the
// pod-level labels.
func buildExecutor(pod *domain.PodSpec, instanceID domain.InstanceID, portResources []domain.Resource, mappings []domain.PortMapping) domain.ExecutorDescriptor {
	resources := []domain.Resource{
		domain.ScalarResource(domain.ResourceCPUs, DefaultExecutorCPUs),
		domain.ScalarResource(domain.ResourceMem, DefaultExecutorMem),
	}
	resources = append(resources, portResources...)

	var networks []domain.NetworkAttachment
	for _, nw := range pod.Networks {
		if nw.Mode != domain.NetworkModeContainer || nw.Name == "" {
			continue
		}
		// Every qualifying network carries the full mapping list; the
		// mappings are not partitioned per network.
		networks = append(networks, domain.NetworkAttachment{
			Name:         nw.Name,
			Labels:       labelList(nw.Labels),
			PortMappings: mappings,
		})
	}

	labels := pod.Labels
	if labels == nil {
		labels = map[string]string{}
	}

	return domain.ExecutorDescriptor{
		ID:         executorIDPrefix + instanceID.String(),
		InstanceID: instanceID.String(),
		Resources:  resources,
		Networks:   networks,
		Labels:     labels,
	}
}

// labelList renders a label map in the list-shaped wire form, sorted by
// key for determinism.
func labelList(labels map[string]string) []domain.Label {
	if len(labels) == 0 {
		return nil
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]domain.Label, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.Label{Key: k, Value: labels[k]})
	}
	return out
}
