package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/mikekeda/athletes/internal/domain/athlete"
	"github.com/mikekeda/athletes/internal/domain/entity"
	"github.com/mikekeda/athletes/internal/infrastructure/repository/memory"
	"github.com/mikekeda/athletes/internal/infrastructure/wiki"
	"github.com/mikekeda/athletes/internal/platform/logging"
	"github.com/mikekeda/athletes/internal/usecase"
)

const testJobToken = "job-secret"

type notFoundFetcher struct{}

func (notFoundFetcher) Fetch(_ context.Context, url string) (wiki.Page, error) {
	return wiki.Page{URL: url, StatusCode: http.StatusNotFound}, nil
}

type testServer struct {
	router   http.Handler
	athletes *memory.AthleteRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := logging.NewNop()
	athletes := memory.NewAthleteRepository()
	teams := memory.NewTeamRepository()
	leagues := memory.NewLeagueRepository()
	extractor := wiki.NewExtractor()
	locations := usecase.NewLocationResolver(nil, logger)
	reconciler := usecase.NewReconciler(athletes, teams, leagues, nil, logger)
	enrichment := usecase.NewEnrichmentService(athletes, notFoundFetcher{}, extractor, reconciler, locations, nil, logger)
	crawl := usecase.NewCrawlService(teams, notFoundFetcher{}, extractor, reconciler, enrichment, locations, nil, usecase.CrawlConfig{}, logger)
	links := usecase.NewLeagueLinkService(teams, notFoundFetcher{}, reconciler, 0, logger)
	social := usecase.NewSocialSyncService(athletes, nil, nil, reconciler, nil, 0, nil, logger)
	jobs := usecase.NewJobOrchestratorService(crawl, enrichment, links, social, nil, memory.NewJobDispatchRepository(), nil, nil, usecase.JobOrchestratorConfig{}, logger)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics\n"))
	})
	handler := NewHandler(usecase.NewCatalogService(athletes, teams, leagues), jobs, metrics, logger)
	return &testServer{
		router:   NewRouter(handler, logger, true, nil, testJobToken),
		athletes: athletes,
	}
}

func (s *testServer) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestInternalJobs_RequireToken(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	body := `{"url":"https://en.wikipedia.org/wiki/Leeds_Rhinos"}`

	rec := srv.do(http.MethodPost, "/v1/internal/jobs/crawl-team", body, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(http.MethodPost, "/v1/internal/jobs/crawl-team", body, map[string]string{"X-Internal-Job-Token": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInternalJobs_PayloadValidation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	auth := map[string]string{"X-Internal-Job-Token": testJobToken}

	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "missing url", path: "/v1/internal/jobs/crawl-team", body: `{}`},
		{name: "relative url", path: "/v1/internal/jobs/enrich-athlete", body: `{"url":"/wiki/Joe_Root"}`},
		{name: "unknown field", path: "/v1/internal/jobs/crawl-team", body: `{"url":"https://en.wikipedia.org/wiki/X","force":true}`},
		{name: "bad gender", path: "/v1/internal/jobs/crawl-league", body: `{"url":"https://en.wikipedia.org/wiki/L","gender":"mixed"}`},
		{name: "bad mode", path: "/v1/internal/jobs/sync-twitter", body: `{"mode":"everything"}`},
		{name: "malformed json", path: "/v1/internal/jobs/link-leagues", body: `{"after_id":`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := srv.do(http.MethodPost, tc.path, tc.body, auth)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestInternalJobs_CrawlTeamStatusMapping(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	auth := map[string]string{"X-Internal-Job-Token": testJobToken}

	rec := srv.do(http.MethodPost, "/v1/internal/jobs/crawl-team", `{"url":"https://en.wikipedia.org/wiki/Gone_FC"}`, auth)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	rec = srv.do(http.MethodPost, "/v1/internal/jobs/crawl-team", `{"url":"https://en.wikipedia.org/wiki/Gone_FC","skip_errors":true,"dispatch_id":"crawl-team-Gone_FC-20261016T120000Z"}`, auth)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestInternalJobs_SocialSyncWithoutClient(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := srv.do(http.MethodPost, "/v1/internal/jobs/sync-youtube", "", map[string]string{"X-Internal-Job-Token": testJobToken})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadRoutes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	item := athlete.Athlete{CanonicalURL: "https://en.wikipedia.org/wiki/Joe_Root", Name: "Joe Root", Category: "Cricket"}
	require.NoError(t, srv.athletes.Create(context.Background(), &item))

	rec := srv.do(http.MethodGet, "/v1/athletes/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	require.Equal(t, "Joe Root", data["name"])
	require.Equal(t, "Joe_Root", data["slug"])
	require.Equal(t, entity.DefaultPhotoURL, data["photo_url"])

	require.Equal(t, http.StatusBadRequest, srv.do(http.MethodGet, "/v1/athletes/abc", "", nil).Code)
	require.Equal(t, http.StatusNotFound, srv.do(http.MethodGet, "/v1/teams/5/athletes", "", nil).Code)
	require.Equal(t, http.StatusNotFound, srv.do(http.MethodGet, "/v1/leagues/3", "", nil).Code)
}

func TestSystemRoutes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	require.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/healthz", "", nil).Code)

	rec := srv.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "# metrics")

	rec = srv.do(http.MethodGet, "/openapi.yaml", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/v1/internal/jobs/crawl-team")
}
