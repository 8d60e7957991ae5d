package matcher

import (
	"sort"

	"github.com/TeddyRux/marathon/domain"
)

// OfferMatcher is a first-fit matcher: role-filtered scalar totals must
// cover the pod's summed requirements, and every flattened endpoint must
// receive a host port from the offered ranges that no running task on
// the same agent already holds.
type OfferMatcher struct{}

// NewOfferMatcher creates the default matcher.
func NewOfferMatcher() *OfferMatcher {
	return &OfferMatcher{}
}

// Match implements the Matcher interface.
func (om *OfferMatcher) Match(offer *domain.ResourceOffer, pod *domain.PodSpec, running domain.RunningTasksFunc, selector RoleSelector) *Match {
	offered := selectResources(offer.Resources, selector)

	needed := map[string]float64{}
	for _, c := range pod.Containers {
		needed[domain.ResourceCPUs] += c.Resources.CPUs
		needed[domain.ResourceMem] += c.Resources.Mem
		needed[domain.ResourceDisk] += c.Resources.Disk
		needed[domain.ResourceGPUs] += float64(c.Resources.GPUs)
	}
	for name, want := range needed {
		if want > 0 && scalarTotal(offered, name) < want {
			return nil
		}
	}

	refs := domain.FlattenEndpoints(pod)
	ports, portResources := assignPorts(refs, offered, offer.AgentID, running)
	if ports == nil {
		return nil
	}

	var scalars []domain.Resource
	for _, name := range []string{domain.ResourceCPUs, domain.ResourceMem, domain.ResourceDisk, domain.ResourceGPUs} {
		if needed[name] > 0 {
			scalars = append(scalars, domain.ScalarResource(name, needed[name]))
		}
	}

	return &Match{
		EndpointCount:   len(refs),
		Ports:           ports,
		ScalarResources: scalars,
		PortResources:   portResources,
	}
}

func selectResources(resources []domain.Resource, selector RoleSelector) []domain.Resource {
	var out []domain.Resource
	for _, r := range resources {
		if selector(r.EffectiveRole()) {
			out = append(out, r)
		}
	}
	return out
}

func scalarTotal(resources []domain.Resource, name string) float64 {
	var total float64
	for _, r := range resources {
		if r.Name == name && r.Scalar != nil {
			total += *r.Scalar
		}
	}
	return total
}

// portCandidate is one offered port with the role it came from.
type portCandidate struct {
	port int
	role string
}

// assignPorts gives every endpoint a host port, preferring the declared
// host port and falling back to the first free offered port for dynamic
// requests. A nil map means the offer cannot satisfy the endpoints. The
// running-tasks thunk is evaluated only when the pod declares endpoints.
func assignPorts(refs []domain.EndpointRef, offered []domain.Resource, agentID string, running domain.RunningTasksFunc) (map[int]int, []domain.Resource) {
	ports := make(map[int]int, len(refs))
	if len(refs) == 0 {
		return ports, nil
	}

	inUse := map[int]bool{}
	if running != nil {
		for _, t := range running() {
			if t.AgentID != agentID {
				continue
			}
			for _, p := range t.HostPorts {
				inUse[p] = true
			}
		}
	}

	var candidates []portCandidate
	for _, r := range offered {
		if r.Name != domain.ResourcePorts {
			continue
		}
		for _, rng := range r.Ranges {
			for p := rng.Begin; p <= rng.End; p++ {
				if !inUse[p] {
					candidates = append(candidates, portCandidate{port: p, role: r.EffectiveRole()})
				}
			}
		}
	}

	taken := map[int]bool{}
	roleByPort := map[int]string{}
	for _, ref := range refs {
		var assigned int
		if want := ref.Endpoint.HostPort; want > 0 {
			found := false
			for _, c := range candidates {
				if c.port == want && !taken[want] {
					assigned, found = want, true
					roleByPort[want] = c.role
					break
				}
			}
			if !found {
				return nil, nil
			}
		} else {
			found := false
			for _, c := range candidates {
				if !taken[c.port] {
					assigned, found = c.port, true
					roleByPort[c.port] = c.role
					break
				}
			}
			if !found {
				return nil, nil
			}
		}
		taken[assigned] = true
		ports[ref.Index] = assigned
	}

	return ports, consumedPortResources(ports, roleByPort)
}

// consumedPortResources folds the assigned ports into one ports resource
// per role, single-port ranges in ascending order.
func consumedPortResources(ports map[int]int, roleByPort map[int]string) []domain.Resource {
	byRole := map[string][]int{}
	for _, p := range ports {
		role := roleByPort[p]
		byRole[role] = append(byRole[role], p)
	}

	roles := make([]string, 0, len(byRole))
	for role := range byRole {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	var out []domain.Resource
	for _, role := range roles {
		assigned := byRole[role]
		sort.Ints(assigned)
		ranges := make([]domain.PortRange, 0, len(assigned))
		for _, p := range assigned {
			ranges = append(ranges, domain.PortRange{Begin: p, End: p})
		}
		out = append(out, domain.RangeResource(domain.ResourcePorts, role, ranges...))
	}
	return out
}
