package compiler

import "github.com/TeddyRux/marathon/domain"

// buildHealthCheck compiles the container's declared health check.
// Check kinds are inspected in fixed priority order command, HTTP, TCP;
// only the first present kind is honored when more than one was
// erroneously declared.
func buildHealthCheck(c *domain.ContainerSpec, resolved []resolvedEndpoint) domain.HealthCheckDescriptor {
	hc := c.HealthCheck
	switch {
	case hc.Command != nil:
		cmd := checkCommand(hc.Command)
		return domain.HealthCheckDescriptor{
			Type:    domain.HealthCheckCommand,
			Command: &cmd,
		}
	case hc.HTTP != nil:
		return domain.HealthCheckDescriptor{
			Type:   domain.HealthCheckHTTP,
			Port:   endpointHostPort(hc.HTTP.Endpoint, resolved),
			Scheme: hc.HTTP.Scheme,
			Path:   hc.HTTP.Path,
		}
	case hc.TCP != nil:
		return domain.HealthCheckDescriptor{
			Type: domain.HealthCheckTCP,
			Port: endpointHostPort(hc.TCP.Endpoint, resolved),
		}
	default:
		// A declared check with no kind set is malformed input; emit a
		// portless TCP check and let downstream execution fail fast.
		return domain.HealthCheckDescriptor{Type: domain.HealthCheckTCP}
	}
}

// checkCommand translates a check command with the same shell/argv
// rules as the launch command.
func checkCommand(spec *domain.CommandSpec) domain.CommandDescriptor {
	var cmd domain.CommandDescriptor
	switch {
	case spec.Shell != "":
		cmd.Shell = true
		cmd.Value = spec.Shell
	case len(spec.Args) > 0:
		cmd.Shell = false
		cmd.Args = spec.Args
		cmd.Value = spec.Args[0]
	}
	return cmd
}

// endpointHostPort resolves a declared endpoint name against the
// container's own resolved endpoints. A nil result means the name did
// not resolve or carried no host port; the check is still emitted and
// downstream execution fails fast.
//
// Resolution always yields the host port, even under container-mode
// networking where the container port may arguably be the right value.
// That gap is known and deliberately preserved.
func endpointHostPort(name string, resolved []resolvedEndpoint) *int {
	for _, re := range resolved {
		if re.ref.Endpoint.Name == name {
			return re.hostPort
		}
	}
	return nil
}
