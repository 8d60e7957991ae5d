package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/TeddyRux/marathon/errs"
	"github.com/TeddyRux/marathon/pkg/logger"
	"github.com/TeddyRux/marathon/service"
)

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SuccessResponse represents the success response structure
type SuccessResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type Params struct {
	fx.In
	Svc *service.Service
}

func NewHandler(params Params) (*Handler, error) {
	return &Handler{
		Svc: params.Svc,
	}, nil
}

type Handler struct {
	Svc *service.Service
}

// echoHandler adapts a plain net/http handler to echo.
func (h *Handler) echoHandler(fn http.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		fn(c.Response(), c.Request())
		return nil
	}
}

// echoHandlerWithParams passes the route parameters through to the
// handler.
func (h *Handler) echoHandlerWithParams(fn func(w http.ResponseWriter, r *http.Request, params map[string]string)) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := map[string]string{}
		for _, name := range c.ParamNames() {
			params[name] = c.Param(name)
		}
		fn(c.Response(), c.Request(), params)
		return nil
	}
}

func (h *Handler) JSONResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		logger.Logger(ctx).Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) JSONBind(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(dst)
}

func (h *Handler) ErrorResponse(ctx context.Context, w http.ResponseWriter, status int, errMsg string) {
	resp := ErrorResponse{
		Success: false,
		Error:   errMsg,
	}
	h.JSONResponse(ctx, w, status, resp)
}

func (h *Handler) HandleError(ctx context.Context, w http.ResponseWriter, err error) {
	if httpErr, ok := errs.IsHTTPStatusError(err); ok {
		h.ErrorResponse(ctx, w, httpErr.StatusCode, httpErr.Message)
		return
	}
	h.ErrorResponse(ctx, w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) SuccessResponse(ctx context.Context, w http.ResponseWriter, message string) {
	resp := SuccessResponse{
		Success:   true,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	h.JSONResponse(ctx, w, http.StatusOK, resp)
}

// HealthCheck reports service liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.JSONResponse(r.Context(), w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Version reports the API identity.
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	h.JSONResponse(r.Context(), w, http.StatusOK, map[string]string{
		"message": "Marathon Placement Compiler API",
		"version": "v1",
	})
}
