package handlers

import (
	"context"
	"net/http"
	"sync"

	"smart_fan/internal/control"
	"smart_fan/internal/impact"
	"smart_fan/internal/models"
	"smart_fan/internal/service"

	"github.com/gin-gonic/gin"
)

const testAPIKey = "device-key"

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockEvaluator struct {
	mu       sync.Mutex
	result   service.Evaluation
	err      error
	defaults service.Defaults

	lastParams service.EvaluateParams
	lastLive   service.LiveParams
	liveCalls  int
}

func (m *mockEvaluator) Evaluate(_ context.Context, p service.EvaluateParams) (service.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastParams = p
	return m.result, m.err
}
func (m *mockEvaluator) EvaluateLive(_ context.Context, p service.LiveParams) (service.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLive = p
	m.liveCalls++
	return m.result, m.err
}
func (m *mockEvaluator) Defaults() service.Defaults { return m.defaults }

func (m *mockEvaluator) live() (service.LiveParams, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastLive, m.liveCalls
}

type mockTelemetry struct {
	stored     models.Reading
	ingestErr  error
	lastIngest service.ReadingInput
	calls      int

	latest     []models.Reading
	latestErr  error
	lastFilter service.ReadingFilter
}

func (m *mockTelemetry) Ingest(_ context.Context, in service.ReadingInput) (models.Reading, error) {
	m.calls++
	m.lastIngest = in
	return m.stored, m.ingestErr
}
func (m *mockTelemetry) Latest(_ context.Context, f service.ReadingFilter) ([]models.Reading, error) {
	m.lastFilter = f
	return m.latest, m.latestErr
}

type mockRunLog struct {
	resp       []models.EvaluationRun
	err        error
	lastFilter service.RunFilter
}

func (m *mockRunLog) List(_ context.Context, f service.RunFilter) ([]models.EvaluationRun, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func testDefaults() service.Defaults {
	return service.Defaults{
		Policy:     control.Policy{HighC: 26, LowC: 25.5},
		Rates:      impact.DefaultRates(),
		Projection: impact.DefaultProjection(),
	}
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, Options{IngestAPIKey: testAPIKey})
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
