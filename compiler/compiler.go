// Package compiler turns a pod spec plus one accepted resource offer
// into the placement the executor protocol runs: one executor
// descriptor, one task descriptor per container, and the list of host
// ports consumed. Every function here is a pure constructor over its
// inputs; the only stateful collaborator is the caller-supplied instance
// identity factory.
package compiler

import (
	"github.com/TeddyRux/marathon/domain"
	"github.com/TeddyRux/marathon/matcher"
)

// Config carries the process-wide settings the compiler needs. It is
// threaded explicitly; the compiler reads no ambient state.
type Config struct {
	// DefaultAcceptedRoles is used when a pod declares no accepted
	// resource roles of its own.
	DefaultAcceptedRoles []string
	// EnvPrefix is prepended to every port-derived environment variable
	// name. Empty means no prefix.
	EnvPrefix string
}

// PlacementCompiler compiles pods against offers. Safe for concurrent
// use: each Compile call only reads its inputs and allocates fresh
// outputs.
type PlacementCompiler struct {
	cfg           Config
	matcher       matcher.Matcher
	newInstanceID domain.InstanceIDFactory
}

// New creates a placement compiler. A nil factory falls back to the
// default instance identity factory.
func New(cfg Config, m matcher.Matcher, factory domain.InstanceIDFactory) *PlacementCompiler {
	if factory == nil {
		factory = domain.NewInstanceID
	}
	if len(cfg.DefaultAcceptedRoles) == 0 {
		cfg.DefaultAcceptedRoles = []string{domain.DefaultRole}
	}
	return &PlacementCompiler{cfg: cfg, matcher: m, newInstanceID: factory}
}

// resolvedEndpoint pairs one flattened endpoint with the host port the
// match assigned to it, if any.
type resolvedEndpoint struct {
	ref      domain.EndpointRef
	hostPort *int
}

// Compile runs one scheduling attempt of pod against offer. The second
// return value is false when the offer cannot satisfy the pod; that is
// the normal rejection outcome, not an error. Success is total
// construction: a returned result is always fully built.
func (pc *PlacementCompiler) Compile(pod *domain.PodSpec, offer *domain.ResourceOffer, running domain.RunningTasksFunc) (*domain.PlacementResult, bool) {
	roles := pod.AcceptedRoles
	if len(roles) == 0 {
		roles = pc.cfg.DefaultAcceptedRoles
	}

	m := pc.matcher.Match(offer, pod, running, matcher.AnyOfRoles(roles...))
	if m == nil {
		return nil, false
	}

	instanceID := pc.newInstanceID(pod.ID)

	// The flattened indices here are the same ones the matcher keyed its
	// port assignments by; see domain.FlattenEndpoints.
	refs := domain.FlattenEndpoints(pod)
	resolved := make([]resolvedEndpoint, len(refs))
	for i, ref := range refs {
		re := resolvedEndpoint{ref: ref}
		if p, ok := m.HostPort(ref.Index); ok {
			v := p
			re.hostPort = &v
		}
		resolved[i] = re
	}

	mappings := portMappings(resolved)
	portEnv := podPortsEnv(resolved)

	tasks := make([]domain.TaskDescriptor, len(pod.Containers))
	for i := range pod.Containers {
		var own []resolvedEndpoint
		for _, re := range resolved {
			if re.ref.ContainerIndex == i {
				own = append(own, re)
			}
		}
		tasks[i] = pc.buildTask(pod, &pod.Containers[i], instanceID, offer.Hostname, own, portEnv)
	}

	return &domain.PlacementResult{
		Executor:  buildExecutor(pod, instanceID, m.PortResources, mappings),
		TaskGroup: tasks,
		HostPorts: m.HostPorts(),
	}, true
}

// podPortsEnv computes the port-derived variables for the whole pod;
// every task receives the same set.
func podPortsEnv(resolved []resolvedEndpoint) map[string]string {
	containerPorts := make([]int, len(resolved))
	hostPorts := make([]*int, len(resolved))
	names := make([]string, len(resolved))
	for i, re := range resolved {
		containerPorts[i] = re.ref.Endpoint.ContainerPort
		hostPorts[i] = re.hostPort
		names[i] = re.ref.Endpoint.Name
	}
	return PortsEnv(containerPorts, hostPorts, names)
}
