package compiler

import (
	"time"

	"github.com/TeddyRux/marathon/domain"
)

// buildCommand compiles the per-container process descriptor: command
// variant, runtime user, artifact fetches and the fully composed
// environment.
func (pc *PlacementCompiler) buildCommand(pod *domain.PodSpec, c *domain.ContainerSpec, instanceID domain.InstanceID, host string, portEnv map[string]string) domain.CommandDescriptor {
	cmd := domain.CommandDescriptor{
		Env: pc.composeEnv(pod, c, instanceID, host, portEnv),
	}

	if c.Command != nil {
		switch {
		case c.Command.Shell != "":
			cmd.Shell = true
			cmd.Value = c.Command.Shell
		case len(c.Command.Args) > 0:
			cmd.Shell = false
			cmd.Args = c.Command.Args
			// The first argument doubles as the single-value field for
			// consumers that only read Value.
			cmd.Value = c.Command.Args[0]
		}
	}

	if c.User != "" {
		cmd.User = c.User
	} else if pod.User != "" {
		cmd.User = pod.User
	}

	for _, a := range c.Artifacts {
		cmd.Artifacts = append(cmd.Artifacts, domain.ArtifactDescriptor{
			URI:        a.URI,
			Cache:      a.Cache,
			Extract:    a.Extract,
			Executable: a.Executable,
			DestPath:   a.DestPath,
		})
	}

	return cmd
}

// composeEnv folds the environment layers by key, later layers winning:
// pod variables, container variables, the synthetic HOST variable, the
// task-context variables, label-derived variables, and finally the
// port-derived variables under the configured prefix. Each key appears
// exactly once with the last-writing layer's value.
func (pc *PlacementCompiler) composeEnv(pod *domain.PodSpec, c *domain.ContainerSpec, instanceID domain.InstanceID, host string, portEnv map[string]string) map[string]string {
	env := map[string]string{}
	for k, v := range pod.Env {
		env[k] = v
	}
	for k, v := range c.Env {
		env[k] = v
	}
	env[EnvHost] = host
	for k, v := range taskContextEnv(pod, c, instanceID) {
		env[k] = v
	}
	for k, v := range LabelsEnv(mergeLabels(pod.Labels, c.Labels)) {
		env[k] = v
	}
	for k, v := range portEnv {
		env[pc.cfg.EnvPrefix+k] = v
	}
	return env
}

// taskContextEnv are the always-present synthetic variables describing
// the task's own identity and resources. They are never user-suppressed.
func taskContextEnv(pod *domain.PodSpec, c *domain.ContainerSpec, instanceID domain.InstanceID) map[string]string {
	return map[string]string{
		EnvTaskID:       instanceID.String(),
		EnvAppID:        pod.ID,
		EnvAppVersion:   pod.Version.Format(time.RFC3339),
		EnvContainerID:  c.Name,
		EnvResourceCPUs: formatScalar(c.Resources.CPUs),
		EnvResourceMem:  formatScalar(c.Resources.Mem),
		EnvResourceDisk: formatScalar(c.Resources.Disk),
		EnvResourceGPUs: formatScalar(float64(c.Resources.GPUs)),
	}
}
