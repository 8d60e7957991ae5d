package compiler

import "github.com/TeddyRux/marathon/domain"

// portMappings pairs declared endpoints with the host ports the match
// resolved, in input order. A dynamic container port (zero or absent)
// becomes the assigned host port itself; endpoints without a resolved
// host port emit no mapping. The protocol field is left unset: the
// surrounding network modules do not consume it yet, and filling it here
// would silently change the wire shape.
func portMappings(resolved []resolvedEndpoint) []domain.PortMapping {
	var mappings []domain.PortMapping
	for _, re := range resolved {
		if re.hostPort == nil {
			continue
		}
		containerPort := re.ref.Endpoint.ContainerPort
		if containerPort == 0 {
			containerPort = *re.hostPort
		}
		mappings = append(mappings, domain.PortMapping{
			ContainerPort: containerPort,
			HostPort:      *re.hostPort,
		})
	}
	return mappings
}
