// Package matcher reconciles a pod's resource requirements against a
// single node offer. The placement compiler consumes it through the
// Matcher interface; OfferMatcher is the default implementation.
package matcher

import "github.com/TeddyRux/marathon/domain"

// RoleSelector decides which resource roles a pod may consume.
type RoleSelector func(role string) bool

// AnyOfRoles selects resources whose role is one of the given roles.
func AnyOfRoles(roles ...string) RoleSelector {
	set := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return func(role string) bool {
		_, ok := set[role]
		return ok
	}
}

// Match is a successful reconciliation of one pod against one offer.
// Resolved host ports are keyed by the stable flattened endpoint index
// assigned by domain.FlattenEndpoints; that indexing is the contract
// shared with the placement compiler.
type Match struct {
	// EndpointCount is the length of the flattened endpoint list the
	// match was computed for.
	EndpointCount int
	// Ports maps flattened endpoint index to the assigned host port.
	// Every endpoint of a successful match resolves, so the map covers
	// all indices; consumers still treat lookups as optional.
	Ports map[int]int
	// ScalarResources is the aggregate scalar consumption of the pod.
	ScalarResources []domain.Resource
	// PortResources is the consumption attributed to host ports; the
	// executor descriptor carries these alongside its baseline scalars.
	PortResources []domain.Resource
}

// HostPort returns the host port assigned to the flattened endpoint
// index, if any.
func (m *Match) HostPort(idx int) (int, bool) {
	p, ok := m.Ports[idx]
	return p, ok
}

// HostPorts renders the assignments as an index-ordered optional list.
func (m *Match) HostPorts() []*int {
	out := make([]*int, m.EndpointCount)
	for i := range out {
		if p, ok := m.Ports[i]; ok {
			v := p
			out[i] = &v
		}
	}
	return out
}

// Matcher reconciles one offer against one pod. A nil result means the
// offer cannot satisfy the pod; that is the normal rejection outcome,
// not an error. The running-tasks thunk is evaluated lazily and at most
// once.
type Matcher interface {
	Match(offer *domain.ResourceOffer, pod *domain.PodSpec, running domain.RunningTasksFunc, selector RoleSelector) *Match
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(offer *domain.ResourceOffer, pod *domain.PodSpec, running domain.RunningTasksFunc, selector RoleSelector) *Match

func (f MatcherFunc) Match(offer *domain.ResourceOffer, pod *domain.PodSpec, running domain.RunningTasksFunc, selector RoleSelector) *Match {
	return f(offer, pod, running, selector)
}
