package domain

import "time"

// NetworkMode describes how a pod network is attached to its containers.
type NetworkMode string

const (
	// NetworkModeContainer gives the pod its own network namespace joined
	// to a named network.
	NetworkModeContainer NetworkMode = "container"
	// NetworkModeHost shares the agent's network namespace.
	NetworkModeHost NetworkMode = "host"
)

// ImageKind selects the container image format.
type ImageKind string

const (
	ImageKindDocker ImageKind = "docker"
	ImageKindAppC   ImageKind = "appc"
)

// PodSpec is a declarative workload: one or more co-located containers
// sharing a sandbox, networks and volumes.
type PodSpec struct {
	ID            string            `json:"id"`                                // hierarchical path, e.g. /prod/frontend
	Containers    []ContainerSpec   `json:"containers"`                        // ordered; names should be unique within the pod
	User          string            `json:"user,omitempty"`                    // default runtime user for all containers
	Labels        map[string]string `json:"labels,omitempty"`                  // pod-scoped labels
	Env           map[string]string `json:"environment,omitempty"`             // pod-scoped environment variables
	Networks      []NetworkSpec     `json:"networks,omitempty"`                // ordered
	Volumes       []VolumeSpec      `json:"volumes,omitempty"`                 // ordered; referenced by container mounts
	AcceptedRoles []string          `json:"accepted_resource_roles,omitempty"` // empty = inherit the configured default set
	Version       time.Time         `json:"version"`                           // declared version timestamp
}

// NetworkSpec declares one pod network.
type NetworkSpec struct {
	Name   string            `json:"name,omitempty"`
	Mode   NetworkMode       `json:"mode"`
	Labels map[string]string `json:"labels,omitempty"`
}

// VolumeSpec declares a pod-level volume. An empty host path means an
// anonymous, sandbox-local volume.
type VolumeSpec struct {
	Name     string `json:"name"`
	HostPath string `json:"host_path,omitempty"`
}

// ContainerSpec declares one container of a pod.
type ContainerSpec struct {
	Name         string            `json:"name"`
	Resources    ResourceLimits    `json:"resources"`
	Endpoints    []EndpointSpec    `json:"endpoints,omitempty"` // ordered
	Command      *CommandSpec      `json:"command,omitempty"`
	User         string            `json:"user,omitempty"` // overrides PodSpec.User
	Labels       map[string]string `json:"labels,omitempty"`
	Env          map[string]string `json:"environment,omitempty"`
	Artifacts    []ArtifactSpec    `json:"artifacts,omitempty"`     // ordered, fetched before launch
	VolumeMounts []VolumeMountSpec `json:"volume_mounts,omitempty"` // ordered
	Image        *ImageSpec        `json:"image,omitempty"`
	HealthCheck  *HealthCheckSpec  `json:"health_check,omitempty"`
}

// ResourceLimits are per-container scalar resource requirements.
type ResourceLimits struct {
	CPUs float64 `json:"cpus"`
	Mem  float64 `json:"mem"`
	Disk float64 `json:"disk,omitempty"`
	GPUs int     `json:"gpus,omitempty"`
}

// EndpointSpec declares a network endpoint of a container. A container
// port of zero means "assign dynamically"; a host port of zero means any
// offered port is acceptable.
type EndpointSpec struct {
	Name          string   `json:"name"`
	ContainerPort int      `json:"container_port,omitempty"`
	HostPort      int      `json:"host_port,omitempty"`
	Protocols     []string `json:"protocols,omitempty"`
}

// CommandSpec is the launch command. Shell and Args are mutually
// exclusive; when neither is set the image entrypoint is used.
type CommandSpec struct {
	Shell string   `json:"shell,omitempty"`
	Args  []string `json:"args,omitempty"`
}

// ArtifactSpec is one URI to fetch into the sandbox before launch.
// Unset optional flags are passed through unset, not defaulted.
type ArtifactSpec struct {
	URI        string `json:"uri"`
	Cache      *bool  `json:"cache,omitempty"`
	Extract    *bool  `json:"extract,omitempty"`
	Executable *bool  `json:"executable,omitempty"`
	DestPath   string `json:"dest_path,omitempty"`
}

// VolumeMountSpec mounts a pod volume into a container by name.
type VolumeMountSpec struct {
	Name      string `json:"name"` // references VolumeSpec.Name
	MountPath string `json:"mount_path"`
	ReadOnly  *bool  `json:"read_only,omitempty"` // RO only when explicitly true
}

// ImageSpec references a container image.
type ImageSpec struct {
	Kind      ImageKind `json:"kind"`
	ID        string    `json:"id"`
	ForcePull *bool     `json:"force_pull,omitempty"`
}

// HealthCheckSpec declares a container health check. Exactly one of the
// three kinds should be set; when several are set the first in the order
// command, HTTP, TCP wins.
type HealthCheckSpec struct {
	Command *CommandSpec   `json:"command,omitempty"`
	HTTP    *HTTPCheckSpec `json:"http,omitempty"`
	TCP     *TCPCheckSpec  `json:"tcp,omitempty"`
}

// HTTPCheckSpec probes an HTTP endpoint declared on the same container.
type HTTPCheckSpec struct {
	Endpoint string `json:"endpoint"` // references EndpointSpec.Name
	Scheme   string `json:"scheme,omitempty"`
	Path     string `json:"path,omitempty"`
}

// TCPCheckSpec probes a TCP endpoint declared on the same container.
type TCPCheckSpec struct {
	Endpoint string `json:"endpoint"` // references EndpointSpec.Name
}
