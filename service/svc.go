package service

import (
	"sync"
	"time"

	cache "github.com/Code-Hex/go-generics-cache"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/TeddyRux/marathon/compiler"
	"github.com/TeddyRux/marathon/config"
	"github.com/TeddyRux/marathon/domain"
	"github.com/TeddyRux/marathon/events"
	pkgutil "github.com/TeddyRux/marathon/pkg/util"
)

// Params holds the parameters for creating a new Service
type Params struct {
	fx.In

	Config     config.Config
	Registerer prometheus.Registerer `optional:"true"`
}

// NewService creates a new Service instance
func NewService(params Params) (*Service, error) {
	reg := params.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	metrics, err := NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	pc := compiler.New(compiler.Config{
		DefaultAcceptedRoles: params.Config.Matcher.DefaultAcceptedRoles,
		EnvPrefix:            params.Config.Environment.Prefix,
	}, newMatcher(), domain.NewInstanceID)

	ttl := time.Duration(params.Config.Cache.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &Service{
		compiler:  pc,
		bus:       events.NewBus(),
		results:   cache.New[string, *domain.PlacementResult](),
		running:   pkgutil.NewGenericMap[string, []domain.RunningTask](),
		metrics:   metrics,
		resultTTL: ttl,
	}, nil
}

// Service owns the placement compiler and its surrounding collaborators:
// the lifecycle event bus, the recent-result cache, the per-agent
// running-task state and the compile metrics.
type Service struct {
	compiler  *compiler.PlacementCompiler
	bus       *events.Bus
	results   *cache.Cache[string, *domain.PlacementResult]
	running   *pkgutil.GenericMap[string, []domain.RunningTask]
	metrics   *Metrics
	resultTTL time.Duration

	runningMu sync.Mutex
}

// Events exposes the lifecycle event bus for subscription.
func (svc *Service) Events() *events.Bus {
	return svc.bus
}
