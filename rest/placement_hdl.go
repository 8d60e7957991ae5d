package rest

import (
	"net/http"

	"github.com/TeddyRux/marathon/domain"
	"github.com/TeddyRux/marathon/errs"
)

// PlacementRequest carries one pod and one offer to compile against each
// other.
type PlacementRequest struct {
	Pod   *domain.PodSpec       `json:"pod"`
	Offer *domain.ResourceOffer `json:"offer"`
}

// PlacementResponse reports the compile outcome. Matched false means
// the offer could not satisfy the pod; the caller should retry with a
// future offer.
type PlacementResponse struct {
	Success   bool                    `json:"success"`
	Matched   bool                    `json:"matched"`
	Placement *domain.PlacementResult `json:"placement,omitempty"`
}

// CompilePlacement compiles a pod against an offer and returns the
// placement descriptor.
func (h *Handler) CompilePlacement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PlacementRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Pod == nil || req.Offer == nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "both pod and offer are required")
		return
	}
	if len(req.Pod.Containers) == 0 {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "pod declares no containers")
		return
	}

	result, matched := h.Svc.PlaceWorkload(ctx, req.Pod, req.Offer)
	h.JSONResponse(ctx, w, http.StatusOK, PlacementResponse{
		Success:   true,
		Matched:   matched,
		Placement: result,
	})
}

// GetPlacement returns a recently compiled placement by instance id.
func (h *Handler) GetPlacement(w http.ResponseWriter, r *http.Request, params map[string]string) {
	ctx := r.Context()

	instanceID := params["instanceID"]
	result, ok := h.Svc.GetPlacement(ctx, instanceID)
	if !ok {
		h.HandleError(ctx, w, errs.NewHTTPStatusError(http.StatusNotFound, "no placement for instance "+instanceID, nil))
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, PlacementResponse{
		Success:   true,
		Matched:   true,
		Placement: result,
	})
}
