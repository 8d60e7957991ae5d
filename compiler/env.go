package compiler

import (
	"sort"
	"strconv"
	"strings"
)

// Environment variable names injected into every task.
const (
	EnvHost          = "HOST"
	EnvTaskID        = "MESOS_TASK_ID"
	EnvAppID         = "MARATHON_APP_ID"
	EnvAppVersion    = "MARATHON_APP_VERSION"
	EnvContainerID   = "MARATHON_CONTAINER_ID"
	EnvResourceCPUs  = "MARATHON_CONTAINER_RESOURCE_CPUS"
	EnvResourceMem   = "MARATHON_CONTAINER_RESOURCE_MEM"
	EnvResourceDisk  = "MARATHON_CONTAINER_RESOURCE_DISK"
	EnvResourceGPUs  = "MARATHON_CONTAINER_RESOURCE_GPUS"
	envAppLabels     = "MARATHON_APP_LABELS"
	envAppLabelStem  = "MARATHON_APP_LABEL_"
	envPortNameStem  = "PORT_"
	envPortIndexStem = "PORT"
)

// LabelsEnv derives environment variables from a label map: one
// MARATHON_APP_LABELS variable joining the uppercased keys, plus one
// MARATHON_APP_LABEL_<KEY> per label. Keys are joined in sorted order so
// the output is deterministic.
func LabelsEnv(labels map[string]string) map[string]string {
	env := make(map[string]string, len(labels)+1)
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	names := make([]string, 0, len(keys))
	for _, k := range keys {
		name := envVarName(k)
		names = append(names, name)
		env[envAppLabelStem+name] = labels[k]
	}
	env[envAppLabels] = strings.Join(names, " ")
	return env
}

// PortsEnv derives per-endpoint variables from three positionally
// aligned slices. For each index with a resolved host port it emits
// PORT<index> unconditionally, PORT_<containerPort> when a container
// port was declared, and PORT_<NAME> when the endpoint is named.
func PortsEnv(containerPorts []int, hostPorts []*int, names []string) map[string]string {
	env := map[string]string{}
	for i, hp := range hostPorts {
		if hp == nil {
			continue
		}
		value := strconv.Itoa(*hp)
		env[envPortIndexStem+strconv.Itoa(i)] = value
		if i < len(containerPorts) && containerPorts[i] > 0 {
			env[envPortNameStem+strconv.Itoa(containerPorts[i])] = value
		}
		if i < len(names) && names[i] != "" {
			env[envPortNameStem+envVarName(names[i])] = value
		}
	}
	return env
}

// envVarName uppercases a key and squashes anything outside [A-Z0-9_]
// into underscores.
func envVarName(key string) string {
	upper := strings.ToUpper(key)
	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// formatScalar renders a scalar resource value for the synthetic
// resource variables.
func formatScalar(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
