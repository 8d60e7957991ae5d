package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeddyRux/marathon/domain"
	"github.com/TeddyRux/marathon/matcher"
)

func anyRole() matcher.RoleSelector {
	return matcher.AnyOfRoles(domain.DefaultRole)
}

func offerFixture() *domain.ResourceOffer {
	return &domain.ResourceOffer{
		ID:       "offer-1",
		AgentID:  "agent-1",
		Hostname: "node1",
		Resources: []domain.Resource{
			domain.ScalarResource(domain.ResourceCPUs, 2.0),
			domain.ScalarResource(domain.ResourceMem, 512.0),
			domain.RangeResource(domain.ResourcePorts, "", domain.PortRange{Begin: 31000, End: 31002}),
		},
	}
}

func podFixture(endpoints ...domain.EndpointSpec) *domain.PodSpec {
	return &domain.PodSpec{
		ID: "/test/app",
		Containers: []domain.ContainerSpec{
			{
				Name:      "app",
				Resources: domain.ResourceLimits{CPUs: 1.0, Mem: 128.0},
				Endpoints: endpoints,
			},
		},
	}
}

// TestMatchScalars tests scalar satisfaction and consumption accounting
func TestMatchScalars(t *testing.T) {
	m := matcher.NewOfferMatcher().Match(offerFixture(), podFixture(), nil, anyRole())
	require.NotNil(t, m)

	require.Len(t, m.ScalarResources, 2)
	assert.Equal(t, domain.ResourceCPUs, m.ScalarResources[0].Name)
	assert.Equal(t, 1.0, *m.ScalarResources[0].Scalar)
	assert.Equal(t, domain.ResourceMem, m.ScalarResources[1].Name)
	assert.Equal(t, 128.0, *m.ScalarResources[1].Scalar)
}

// TestMatchInsufficientScalar tests rejection when a scalar cannot be covered
func TestMatchInsufficientScalar(t *testing.T) {
	pod := podFixture()
	pod.Containers[0].Resources.Mem = 1024.0

	m := matcher.NewOfferMatcher().Match(offerFixture(), pod, nil, anyRole())
	assert.Nil(t, m)
}

// TestMatchDynamicPorts tests that dynamic endpoints get distinct offered ports in index order
func TestMatchDynamicPorts(t *testing.T) {
	pod := podFixture(
		domain.EndpointSpec{Name: "a"},
		domain.EndpointSpec{Name: "b"},
	)

	m := matcher.NewOfferMatcher().Match(offerFixture(), pod, nil, anyRole())
	require.NotNil(t, m)
	assert.Equal(t, 2, m.EndpointCount)

	p0, ok := m.HostPort(0)
	require.True(t, ok)
	p1, ok := m.HostPort(1)
	require.True(t, ok)
	assert.NotEqual(t, p0, p1, "each endpoint gets its own port")

	ports := m.HostPorts()
	require.Len(t, ports, 2)
	assert.Equal(t, p0, *ports[0])
	assert.Equal(t, p1, *ports[1])
}

// TestMatchRequestedHostPort tests that an exact host port request is honored or rejected
func TestMatchRequestedHostPort(t *testing.T) {
	m := matcher.NewOfferMatcher().Match(offerFixture(), podFixture(domain.EndpointSpec{Name: "web", HostPort: 31001}), nil, anyRole())
	require.NotNil(t, m)
	p, ok := m.HostPort(0)
	require.True(t, ok)
	assert.Equal(t, 31001, p)

	m = matcher.NewOfferMatcher().Match(offerFixture(), podFixture(domain.EndpointSpec{Name: "web", HostPort: 9999}), nil, anyRole())
	assert.Nil(t, m, "port outside the offered ranges cannot match")
}

// TestMatchAvoidsRunningTaskPorts tests the lazy running-task thunk
func TestMatchAvoidsRunningTaskPorts(t *testing.T) {
	calls := 0
	running := func() []domain.RunningTask {
		calls++
		return []domain.RunningTask{
			{ID: "t1", AgentID: "agent-1", HostPorts: []int{31000, 31001}},
			{ID: "t2", AgentID: "other-agent", HostPorts: []int{31002}},
		}
	}

	pod := podFixture(domain.EndpointSpec{Name: "web"})
	m := matcher.NewOfferMatcher().Match(offerFixture(), pod, running, anyRole())
	require.NotNil(t, m)
	assert.Equal(t, 1, calls, "thunk is evaluated at most once")

	p, ok := m.HostPort(0)
	require.True(t, ok)
	assert.Equal(t, 31002, p, "ports held on the same agent are skipped; other agents are irrelevant")
}

// TestMatchThunkSkippedWithoutEndpoints tests that the thunk stays unevaluated when no ports are needed
func TestMatchThunkSkippedWithoutEndpoints(t *testing.T) {
	calls := 0
	running := func() []domain.RunningTask {
		calls++
		return nil
	}

	m := matcher.NewOfferMatcher().Match(offerFixture(), podFixture(), running, anyRole())
	require.NotNil(t, m)
	assert.Zero(t, calls, "no endpoints, no need to materialize running tasks")
}

// TestMatchRoleFiltering tests that resources in unaccepted roles are invisible
func TestMatchRoleFiltering(t *testing.T) {
	offer := offerFixture()
	offer.Resources = []domain.Resource{
		{Name: domain.ResourceCPUs, Scalar: scalarPtr(2.0), Role: "slave_public"},
		{Name: domain.ResourceMem, Scalar: scalarPtr(512.0), Role: "slave_public"},
	}

	m := matcher.NewOfferMatcher().Match(offer, podFixture(), nil, anyRole())
	assert.Nil(t, m, "reserved-role resources are invisible to the default role")

	m = matcher.NewOfferMatcher().Match(offer, podFixture(), nil, matcher.AnyOfRoles("slave_public"))
	require.NotNil(t, m)
}

// TestMatchPortResources tests the consumed port resource record
func TestMatchPortResources(t *testing.T) {
	pod := podFixture(domain.EndpointSpec{Name: "web", HostPort: 31002})

	m := matcher.NewOfferMatcher().Match(offerFixture(), pod, nil, anyRole())
	require.NotNil(t, m)
	require.Len(t, m.PortResources, 1)
	assert.Equal(t, domain.ResourcePorts, m.PortResources[0].Name)
	assert.Equal(t, []domain.PortRange{{Begin: 31002, End: 31002}}, m.PortResources[0].Ranges)
}

func scalarPtr(v float64) *float64 {
	return &v
}
