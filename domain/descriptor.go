package domain

// Descriptor value types emitted by the placement compiler. These map
// onto whatever wire schema the surrounding executor protocol defines;
// the compiler's job is only to produce semantically correct values.

// PlacementResult is the complete outcome of compiling one pod against
// one accepted offer. Newly allocated per compile and owned by the
// caller after return.
type PlacementResult struct {
	Executor  ExecutorDescriptor `json:"executor"`
	TaskGroup []TaskDescriptor   `json:"task_group"`
	// HostPorts mirrors the match's resolved port list in flattened
	// endpoint order; a nil entry means no host port was bound at that
	// index.
	HostPorts []*int `json:"host_ports"`
}

// ExecutorDescriptor is the single shared executor of a placement.
type ExecutorDescriptor struct {
	ID         string              `json:"id"`
	InstanceID string              `json:"instance_id"`
	Resources  []Resource          `json:"resources"`
	Networks   []NetworkAttachment `json:"networks,omitempty"`
	Labels     map[string]string   `json:"labels"` // always set, possibly empty
}

// NetworkAttachment attaches the executor to one named container
// network.
type NetworkAttachment struct {
	Name         string        `json:"name"`
	Labels       []Label       `json:"labels,omitempty"`
	PortMappings []PortMapping `json:"port_mappings,omitempty"`
}

// Label is the list-shaped wire form of one label.
type Label struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// PortMapping maps a container port to a resolved host port. Protocol is
// deliberately left unset; see the port mapping resolver.
type PortMapping struct {
	ContainerPort int    `json:"container_port"`
	HostPort      int    `json:"host_port"`
	Protocol      string `json:"protocol,omitempty"`
}

// TaskDescriptor is the placement of one container.
type TaskDescriptor struct {
	Name        string                 `json:"name"`
	TaskID      string                 `json:"task_id"`
	AgentHost   string                 `json:"agent_host"`
	Resources   []Resource             `json:"resources"`
	Labels      map[string]string      `json:"labels,omitempty"` // only when non-empty
	Command     CommandDescriptor      `json:"command"`
	Container   ContainerDescriptor    `json:"container"`
	HealthCheck *HealthCheckDescriptor `json:"health_check,omitempty"`
}

// CommandDescriptor is the per-container process descriptor. An empty
// command (no value, no args) is valid and means "use the image
// entrypoint".
type CommandDescriptor struct {
	Shell     bool                 `json:"shell"`
	Value     string               `json:"value,omitempty"`
	Args      []string             `json:"args,omitempty"`
	User      string               `json:"user,omitempty"`
	Artifacts []ArtifactDescriptor `json:"artifacts,omitempty"`
	Env       map[string]string    `json:"environment"`
}

// ArtifactDescriptor is one sandbox fetch. Optional flags that were not
// declared stay unset.
type ArtifactDescriptor struct {
	URI        string `json:"uri"`
	Cache      *bool  `json:"cache,omitempty"`
	Extract    *bool  `json:"extract,omitempty"`
	Executable *bool  `json:"executable,omitempty"`
	DestPath   string `json:"dest_path,omitempty"`
}

// ContainerType is the runtime isolation backend. Only the universal
// containerizer is in scope.
const ContainerTypeMesos = "MESOS"

// ContainerDescriptor is the per-container sandbox descriptor.
type ContainerDescriptor struct {
	Type   string            `json:"type"`
	Mounts []MountDescriptor `json:"mounts,omitempty"`
	Image  *ImageDescriptor  `json:"image,omitempty"`
}

// Mount modes.
const (
	MountModeRO = "RO"
	MountModeRW = "RW"
)

// MountDescriptor is one resolved volume mount. An absent host path
// means an anonymous sandbox-local volume.
type MountDescriptor struct {
	ContainerPath string `json:"container_path"`
	HostPath      string `json:"host_path,omitempty"`
	Mode          string `json:"mode"`
}

// ImageDescriptor references the container image to run.
type ImageDescriptor struct {
	Kind   ImageKind `json:"kind"`
	ID     string    `json:"id"`
	Cached *bool     `json:"cached,omitempty"` // negation of force-pull; unset when force-pull was unset
	Labels []Label   `json:"labels,omitempty"`
}

// Health check kinds.
const (
	HealthCheckCommand = "COMMAND"
	HealthCheckHTTP    = "HTTP"
	HealthCheckTCP     = "TCP"
)

// HealthCheckDescriptor is the compiled health check of one task. Port
// may be unset when the declared endpoint name did not resolve;
// downstream execution then fails fast by contract.
type HealthCheckDescriptor struct {
	Type    string             `json:"type"`
	Command *CommandDescriptor `json:"command,omitempty"`
	Port    *int               `json:"port,omitempty"`
	Scheme  string             `json:"scheme,omitempty"`
	Path    string             `json:"path,omitempty"`
}
