package domain

// DefaultRole is the unreserved resource role.
const DefaultRole = "*"

// PortRange is an inclusive range of ports.
type PortRange struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// Contains reports whether port falls inside the range.
func (r PortRange) Contains(port int) bool {
	return port >= r.Begin && port <= r.End
}

// Resource is one advertised or consumed resource. Scalar resources carry
// a value, range resources (ports) carry ranges. An empty role means the
// unreserved role.
type Resource struct {
	Name   string      `json:"name"`
	Scalar *float64    `json:"scalar,omitempty"`
	Ranges []PortRange `json:"ranges,omitempty"`
	Role   string      `json:"role,omitempty"`
}

// EffectiveRole returns the resource's role, defaulting to the
// unreserved role.
func (r Resource) EffectiveRole() string {
	if r.Role == "" {
		return DefaultRole
	}
	return r.Role
}

// ScalarResource builds a scalar resource value.
func ScalarResource(name string, value float64) Resource {
	return Resource{Name: name, Scalar: &value}
}

// RangeResource builds a range resource value.
func RangeResource(name string, role string, ranges ...PortRange) Resource {
	return Resource{Name: name, Ranges: ranges, Role: role}
}

// Well-known resource names.
const (
	ResourceCPUs  = "cpus"
	ResourceMem   = "mem"
	ResourceDisk  = "disk"
	ResourceGPUs  = "gpus"
	ResourcePorts = "ports"
)

// ResourceOffer is one cluster node's advertisement of currently
// available resources. Owned by the caller; the compiler only reads it.
type ResourceOffer struct {
	ID        string     `json:"id"`
	AgentID   string     `json:"agent_id"`
	Hostname  string     `json:"hostname"`
	Resources []Resource `json:"resources"`
}

// RunningTask is the slice of cluster state the matcher may consult: a
// task already placed on an agent and the host ports it holds.
type RunningTask struct {
	ID        string `json:"id"`
	AgentID   string `json:"agent_id"`
	HostPorts []int  `json:"host_ports,omitempty"`
}

// RunningTasksFunc lazily supplies the currently running tasks. It is
// evaluated only if the matcher needs it and is called at most once per
// match.
type RunningTasksFunc func() []RunningTask
