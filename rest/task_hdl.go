package rest

import (
	"net/http"

	"github.com/TeddyRux/marathon/domain"
)

// TrackTaskRequest registers a running task so its host ports are
// excluded from future matches on the same agent.
type TrackTaskRequest struct {
	Task domain.RunningTask `json:"task"`
}

// RunningTasksResponse lists the tasks tracked on one agent.
type RunningTasksResponse struct {
	Success bool                 `json:"success"`
	Tasks   []domain.RunningTask `json:"tasks"`
}

// TrackTask records a running task.
func (h *Handler) TrackTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req TrackTaskRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Task.ID == "" || req.Task.AgentID == "" {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "task id and agent id are required")
		return
	}

	h.Svc.TrackTask(ctx, req.Task)
	h.SuccessResponse(ctx, w, "task tracked")
}

// ForgetTask drops a tracked task.
func (h *Handler) ForgetTask(w http.ResponseWriter, r *http.Request, params map[string]string) {
	ctx := r.Context()
	h.Svc.ForgetTask(ctx, params["agentID"], params["taskID"])
	h.SuccessResponse(ctx, w, "task forgotten")
}

// ListRunningTasks lists the tasks tracked on an agent.
func (h *Handler) ListRunningTasks(w http.ResponseWriter, r *http.Request, params map[string]string) {
	ctx := r.Context()
	tasks := h.Svc.RunningTasksOn(params["agentID"])
	if tasks == nil {
		tasks = []domain.RunningTask{}
	}
	h.JSONResponse(ctx, w, http.StatusOK, RunningTasksResponse{
		Success: true,
		Tasks:   tasks,
	})
}
