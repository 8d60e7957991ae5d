package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"

	"github.com/TeddyRux/marathon/app"
	"github.com/TeddyRux/marathon/config"
	"github.com/TeddyRux/marathon/domain"
	"github.com/TeddyRux/marathon/rest"
)

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

type HandlerTestSuite struct {
	suite.Suite
	Handler *rest.Handler
	Ctx     context.Context
	Engine  *echo.Echo
}

func (suite *HandlerTestSuite) SetupSuite() {
	suite.Ctx = context.Background()
	cfg, err := config.InitConfig("does_not_exist", suite.T().TempDir())
	suite.Require().NoError(err, "Failed to load config defaults")

	opt := fx.Options(
		app.HandlerModule(cfg),
		fx.Provide(func() prometheus.Registerer {
			return prometheus.NewRegistry()
		}),
		fx.Populate(&suite.Handler),
	)

	err = fx.New(opt).Start(suite.Ctx)
	suite.Require().NoError(err, "Failed to start Fx app")
	suite.Require().NotNil(suite.Handler, "Handler should not be nil")
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	suite.Engine = e
	suite.Handler.SetupRoutes(e)
}

func (suite *HandlerTestSuite) JSONDecode(r *httptest.ResponseRecorder, dst any) {
	decoder := json.NewDecoder(r.Body)
	err := decoder.Decode(dst)
	suite.Require().NoError(err, "Failed to decode JSON response")
}

func (suite *HandlerTestSuite) JSONBody(payload any) *bytes.Buffer {
	data, err := json.Marshal(payload)
	suite.Require().NoError(err, "Failed to marshal request body")
	return bytes.NewBuffer(data)
}

func (suite *HandlerTestSuite) TestHealthCheck() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	suite.Engine.ServeHTTP(rec, req)

	suite.Equal(http.StatusOK, rec.Code, "Expected status OK")
	var resp map[string]any
	suite.JSONDecode(rec, &resp)
	suite.Equal("healthy", resp["status"].(string), "Expected status to be healthy")
}

func (suite *HandlerTestSuite) TestCompilePlacement() {
	body := suite.JSONBody(rest.PlacementRequest{
		Pod: &domain.PodSpec{
			ID:      "/test/app",
			Version: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			Containers: []domain.ContainerSpec{
				{
					Name:      "app",
					Resources: domain.ResourceLimits{CPUs: 0.5, Mem: 64.0},
				},
			},
		},
		Offer: &domain.ResourceOffer{
			ID:       "offer-1",
			AgentID:  "agent-1",
			Hostname: "node1",
			Resources: []domain.Resource{
				domain.ScalarResource(domain.ResourceCPUs, 1.0),
				domain.ScalarResource(domain.ResourceMem, 128.0),
			},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/placements", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	suite.Engine.ServeHTTP(rec, req)

	suite.Equal(http.StatusOK, rec.Code)
	var resp rest.PlacementResponse
	suite.JSONDecode(rec, &resp)
	suite.True(resp.Success)
	suite.True(resp.Matched)
	suite.Require().NotNil(resp.Placement)
	suite.Require().Len(resp.Placement.TaskGroup, 1)
	suite.Equal("app", resp.Placement.TaskGroup[0].Name)

	// the compiled placement is retrievable by instance id
	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/placements/"+resp.Placement.Executor.InstanceID, nil)
	getRec := httptest.NewRecorder()
	suite.Engine.ServeHTTP(getRec, getReq)
	suite.Equal(http.StatusOK, getRec.Code)
}

func (suite *HandlerTestSuite) TestCompilePlacementNoMatch() {
	body := suite.JSONBody(rest.PlacementRequest{
		Pod: &domain.PodSpec{
			ID: "/test/heavy",
			Containers: []domain.ContainerSpec{
				{
					Name:      "app",
					Resources: domain.ResourceLimits{CPUs: 64.0, Mem: 1 << 20},
				},
			},
		},
		Offer: &domain.ResourceOffer{
			ID:      "offer-2",
			AgentID: "agent-1",
			Resources: []domain.Resource{
				domain.ScalarResource(domain.ResourceCPUs, 1.0),
			},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/placements", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	suite.Engine.ServeHTTP(rec, req)

	suite.Equal(http.StatusOK, rec.Code, "no match is a normal outcome, not an error")
	var resp rest.PlacementResponse
	suite.JSONDecode(rec, &resp)
	suite.True(resp.Success)
	suite.False(resp.Matched)
	suite.Nil(resp.Placement)
}

func (suite *HandlerTestSuite) TestCompilePlacementBadRequest() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/placements", bytes.NewBufferString(`{"pod": null}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	suite.Engine.ServeHTTP(rec, req)

	suite.Equal(http.StatusBadRequest, rec.Code)
	var resp rest.ErrorResponse
	suite.JSONDecode(rec, &resp)
	suite.False(resp.Success)
}

func (suite *HandlerTestSuite) TestGetPlacementNotFound() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/placements/unknown-instance", nil)
	rec := httptest.NewRecorder()
	suite.Engine.ServeHTTP(rec, req)

	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *HandlerTestSuite) TestTrackAndListTasks() {
	body := suite.JSONBody(rest.TrackTaskRequest{
		Task: domain.RunningTask{ID: "t1", AgentID: "agent-9", HostPorts: []int{31000}},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	suite.Engine.ServeHTTP(rec, req)
	suite.Equal(http.StatusOK, rec.Code)

	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/agents/agent-9/tasks", nil)
	listRec := httptest.NewRecorder()
	suite.Engine.ServeHTTP(listRec, listReq)
	suite.Equal(http.StatusOK, listRec.Code)

	var listResp rest.RunningTasksResponse
	suite.JSONDecode(listRec, &listResp)
	suite.Require().Len(listResp.Tasks, 1)
	suite.Equal("t1", listResp.Tasks[0].ID)
}
