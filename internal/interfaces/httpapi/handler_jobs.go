package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mikekeda/athletes/internal/usecase"
)

func (h *Handler) RunCrawlTeamJob(w http.ResponseWriter, r *http.Request) {
	runInternalJob(h, w, r, usecase.JobCrawlTeam, h.jobOrchestrator.RunCrawlTeam)
}

func (h *Handler) RunCrawlLeagueJob(w http.ResponseWriter, r *http.Request) {
	runInternalJob(h, w, r, usecase.JobCrawlLeague, h.jobOrchestrator.RunCrawlLeague)
}

func (h *Handler) RunEnrichAthleteJob(w http.ResponseWriter, r *http.Request) {
	runInternalJob(h, w, r, usecase.JobEnrichAthlete, h.jobOrchestrator.RunEnrichAthlete)
}

func (h *Handler) RunLinkLeaguesJob(w http.ResponseWriter, r *http.Request) {
	runInternalJob(h, w, r, usecase.JobLinkLeagues, h.jobOrchestrator.RunLinkLeagues)
}

func (h *Handler) RunSyncTwitterJob(w http.ResponseWriter, r *http.Request) {
	runInternalJob(h, w, r, usecase.JobSyncTwitter, func(ctx context.Context, job usecase.SocialSyncJob) (usecase.SocialSyncResult, error) {
		return h.jobOrchestrator.RunSocialSync(ctx, usecase.NetworkTwitter, job)
	})
}

func (h *Handler) RunSyncYouTubeJob(w http.ResponseWriter, r *http.Request) {
	runInternalJob(h, w, r, usecase.JobSyncYouTube, func(ctx context.Context, job usecase.SocialSyncJob) (usecase.SocialSyncResult, error) {
		return h.jobOrchestrator.RunSocialSync(ctx, usecase.NetworkYouTube, job)
	})
}

// runInternalJob decodes and validates the queue callback body, then runs it.
// Dispatch bookkeeping happens inside the orchestrator.
func runInternalJob[J any, R any](
	h *Handler,
	w http.ResponseWriter,
	r *http.Request,
	jobName string,
	run func(context.Context, J) (R, error),
) {
	ctx, span := handlerSpan(r, "RunJob", attribute.String("athletes.job", jobName))
	defer span.End()

	if h.jobOrchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: job orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	job, err := decodeInternalJobRequest[J](r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, job); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := run(ctx, job)
	if err != nil {
		h.logger.WarnContext(ctx, "internal job failed", "job", jobName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

func decodeInternalJobRequest[J any](r *http.Request) (J, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req J
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, nil
		}
		return req, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
