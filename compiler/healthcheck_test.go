package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TeddyRux/marathon/domain"
)

func healthFixture(hc *domain.HealthCheckSpec, endpoints ...resolvedEndpoint) (*domain.ContainerSpec, []resolvedEndpoint) {
	return &domain.ContainerSpec{Name: "web", HealthCheck: hc}, endpoints
}

func namedEndpoint(name string, hostPort *int) resolvedEndpoint {
	return resolvedEndpoint{
		ref:      domain.EndpointRef{Endpoint: domain.EndpointSpec{Name: name}},
		hostPort: hostPort,
	}
}

// TestHealthCheckHTTP tests HTTP check compilation with endpoint port resolution
func TestHealthCheckHTTP(t *testing.T) {
	hp := 1234
	c, resolved := healthFixture(&domain.HealthCheckSpec{
		HTTP: &domain.HTTPCheckSpec{Endpoint: "web", Scheme: "https", Path: "/ping"},
	}, namedEndpoint("web", &hp))

	hc := buildHealthCheck(c, resolved)

	assert.Equal(t, domain.HealthCheckHTTP, hc.Type)
	require.NotNil(t, hc.Port)
	assert.Equal(t, 1234, *hc.Port)
	assert.Equal(t, "https", hc.Scheme)
	assert.Equal(t, "/ping", hc.Path)
}

// TestHealthCheckTCP tests TCP check compilation
func TestHealthCheckTCP(t *testing.T) {
	hp := 9000
	c, resolved := healthFixture(&domain.HealthCheckSpec{
		TCP: &domain.TCPCheckSpec{Endpoint: "admin"},
	}, namedEndpoint("admin", &hp))

	hc := buildHealthCheck(c, resolved)

	assert.Equal(t, domain.HealthCheckTCP, hc.Type)
	require.NotNil(t, hc.Port)
	assert.Equal(t, 9000, *hc.Port)
	assert.Empty(t, hc.Scheme)
	assert.Empty(t, hc.Path)
}

// TestHealthCheckCommand tests command check translation
func TestHealthCheckCommand(t *testing.T) {
	c, resolved := healthFixture(&domain.HealthCheckSpec{
		Command: &domain.CommandSpec{Args: []string{"/bin/check", "--fast"}},
	})

	hc := buildHealthCheck(c, resolved)

	assert.Equal(t, domain.HealthCheckCommand, hc.Type)
	require.NotNil(t, hc.Command)
	assert.False(t, hc.Command.Shell)
	assert.Equal(t, []string{"/bin/check", "--fast"}, hc.Command.Args)
	assert.Equal(t, "/bin/check", hc.Command.Value, "first argument doubles as the value field")
	assert.Nil(t, hc.Port)
}

// TestHealthCheckPriorityOrder tests that command wins when several kinds are declared
func TestHealthCheckPriorityOrder(t *testing.T) {
	hp := 80
	c, resolved := healthFixture(&domain.HealthCheckSpec{
		Command: &domain.CommandSpec{Shell: "true"},
		HTTP:    &domain.HTTPCheckSpec{Endpoint: "web"},
		TCP:     &domain.TCPCheckSpec{Endpoint: "web"},
	}, namedEndpoint("web", &hp))

	hc := buildHealthCheck(c, resolved)
	assert.Equal(t, domain.HealthCheckCommand, hc.Type, "command takes priority over HTTP and TCP")
}

// TestHealthCheckUnresolvedEndpoint tests that an unresolvable endpoint still emits a checkless port
func TestHealthCheckUnresolvedEndpoint(t *testing.T) {
	c, resolved := healthFixture(&domain.HealthCheckSpec{
		HTTP: &domain.HTTPCheckSpec{Endpoint: "nope"},
	})

	hc := buildHealthCheck(c, resolved)
	assert.Equal(t, domain.HealthCheckHTTP, hc.Type, "check is emitted even without a resolvable port")
	assert.Nil(t, hc.Port)
}
