package domain

// EndpointRef couples one container endpoint with its stable flattened
// index. The index is the shared ordering key between the resource
// matcher and the placement compiler: both sides address resolved host
// ports by it, never by a bare parallel array position.
type EndpointRef struct {
	Index          int
	ContainerIndex int
	Endpoint       EndpointSpec
}

// FlattenEndpoints lists all endpoints of a pod in container declaration
// order, then endpoint declaration order within each container. Match
// results are keyed by the indices assigned here; any change to this
// ordering changes the matcher/compiler contract.
func FlattenEndpoints(pod *PodSpec) []EndpointRef {
	var refs []EndpointRef
	for ci, c := range pod.Containers {
		for _, ep := range c.Endpoints {
			refs = append(refs, EndpointRef{
				Index:          len(refs),
				ContainerIndex: ci,
				Endpoint:       ep,
			})
		}
	}
	return refs
}
