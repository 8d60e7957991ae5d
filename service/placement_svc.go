package service

import (
	"context"
	"time"

	cache "github.com/Code-Hex/go-generics-cache"

	"github.com/TeddyRux/marathon/domain"
	"github.com/TeddyRux/marathon/events"
	"github.com/TeddyRux/marathon/matcher"
	"github.com/TeddyRux/marathon/pkg/logger"
)

func newMatcher() matcher.Matcher {
	return matcher.NewOfferMatcher()
}

// PlaceWorkload compiles one pod against one offer. The boolean result
// reports whether the offer satisfied the pod; a rejected offer is the
// normal retry-later outcome, not an error.
func (svc *Service) PlaceWorkload(ctx context.Context, pod *domain.PodSpec, offer *domain.ResourceOffer) (*domain.PlacementResult, bool) {
	running := func() []domain.RunningTask {
		return svc.RunningTasksOn(offer.AgentID)
	}

	start := time.Now()
	result, ok := svc.compiler.Compile(pod, offer, running)
	svc.metrics.ObserveCompile(time.Since(start), ok)

	ev := events.Event{
		PodID:   pod.ID,
		OfferID: offer.ID,
		At:      time.Now().UTC(),
	}
	if !ok {
		logger.Logger(ctx).Debug().
			Str("pod", pod.ID).
			Str("offer", offer.ID).
			Strs("accepted_roles", pod.AcceptedRoles).
			Msg("offer rejected")
		ev.Kind = events.PlacementRejected
		svc.bus.Publish(ev)
		return nil, false
	}

	ev.Kind = events.PlacementCompiled
	ev.InstanceID = result.Executor.InstanceID
	svc.bus.Publish(ev)

	svc.results.Set(result.Executor.InstanceID, result, cache.WithExpiration(svc.resultTTL))

	logger.Logger(ctx).Info().
		Str("pod", pod.ID).
		Str("offer", offer.ID).
		Str("instance", result.Executor.InstanceID).
		Int("tasks", len(result.TaskGroup)).
		Msg("placement compiled")
	return result, true
}

// GetPlacement returns a recently compiled placement by instance id.
func (svc *Service) GetPlacement(ctx context.Context, instanceID string) (*domain.PlacementResult, bool) {
	return svc.results.Get(instanceID)
}

// TrackTask records a task as running on its agent, so later matches on
// that agent avoid its host ports.
func (svc *Service) TrackTask(ctx context.Context, task domain.RunningTask) {
	svc.runningMu.Lock()
	defer svc.runningMu.Unlock()
	tasks, _ := svc.running.Load(task.AgentID)
	for _, t := range tasks {
		if t.ID == task.ID {
			return
		}
	}
	svc.running.Store(task.AgentID, append(tasks, task))
}

// ForgetTask drops a tracked task, releasing its host ports for future
// matches.
func (svc *Service) ForgetTask(ctx context.Context, agentID, taskID string) {
	svc.runningMu.Lock()
	defer svc.runningMu.Unlock()
	tasks, ok := svc.running.Load(agentID)
	if !ok {
		return
	}
	kept := make([]domain.RunningTask, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != taskID {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		svc.running.Delete(agentID)
		return
	}
	svc.running.Store(agentID, kept)
}

// RunningTasksOn lists the tasks currently tracked on one agent.
func (svc *Service) RunningTasksOn(agentID string) []domain.RunningTask {
	tasks, _ := svc.running.Load(agentID)
	return tasks
}
