package httpapi

import (
	"net/http"

	"github.com/mikekeda/athletes/internal/usecase"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /metrics", handler.Metrics)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerReadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/athletes/{athleteID}", handler.GetAthlete)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/athletes", handler.ListAthletesByTeam)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	jobs := map[string]http.HandlerFunc{
		usecase.JobCrawlTeam:     handler.RunCrawlTeamJob,
		usecase.JobCrawlLeague:   handler.RunCrawlLeagueJob,
		usecase.JobEnrichAthlete: handler.RunEnrichAthleteJob,
		usecase.JobLinkLeagues:   handler.RunLinkLeaguesJob,
		usecase.JobSyncTwitter:   handler.RunSyncTwitterJob,
		usecase.JobSyncYouTube:   handler.RunSyncYouTubeJob,
	}
	for job, run := range jobs {
		mux.Handle("POST "+usecase.JobPath(job), RequireInternalJobToken(internalJobToken, run))
	}
}
