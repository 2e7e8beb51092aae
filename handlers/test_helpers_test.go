package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"momentum_legal_go/config"
	"momentum_legal_go/middleware"
	"momentum_legal_go/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:       "test",
		AppURL:            "https://momentumlegalpc.com",
		ContactInbox:      "info@momentumlegalpc.com",
		EmailProvider:     config.ProviderEmailJS,
		EmailJSServiceID:  "service_test",
		EmailJSTemplateID: "template_test",
		EmailJSUserID:     "user_test",
		ProviderTimeout:   5 * time.Second,
	}
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", testConfig())

	return e, c, rec
}

// spyDeliverer records deliveries instead of calling a provider
type spyDeliverer struct {
	mu    sync.Mutex
	subs  []*models.SanitizedSubmission
	err   error
	panic bool
}

func (s *spyDeliverer) Deliver(ctx context.Context, sub *models.SanitizedSubmission) error {
	if s.panic {
		panic("provider client exploded")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, sub)
	return s.err
}

func (s *spyDeliverer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type testServer struct {
	e     *echo.Echo
	spy   *spyDeliverer
	clock *fakeClock
}

func newTestServer(cfg *config.Config) *testServer {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	limiterConfig := middleware.ContactRateLimitConfig()
	limiterConfig.Now = clock.Now

	spy := &spyDeliverer{}
	return &testServer{
		e:     NewServer(cfg, spy, middleware.NewRateLimiter(limiterConfig)),
		spy:   spy,
		clock: clock,
	}
}

// postContact sends body to /api/contact from the given client address
func (s *testServer) postContact(body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func toJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func newRecorderFor(s *testServer, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}
