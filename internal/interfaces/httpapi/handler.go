package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mikekeda/athletes/internal/domain/athlete"
	"github.com/mikekeda/athletes/internal/platform/logging"
	"github.com/mikekeda/athletes/internal/usecase"
)

type Handler struct {
	catalog         *usecase.CatalogService
	jobOrchestrator *usecase.JobOrchestratorService
	metrics         http.Handler
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	catalog *usecase.CatalogService,
	jobOrchestrator *usecase.JobOrchestratorService,
	metrics http.Handler,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if metrics == nil {
		metrics = http.NotFoundHandler()
	}

	return &Handler{
		catalog:         catalog,
		jobOrchestrator: jobOrchestrator,
		metrics:         metrics,
		logger:          logger.Named("httpapi"),
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}

func (h *Handler) GetAthlete(w http.ResponseWriter, r *http.Request) {
	getByID(h, w, r, "athleteID", "GetAthlete", h.catalog.GetAthlete, athleteToDTO)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	getByID(h, w, r, "teamID", "GetTeam", h.catalog.GetTeam, teamToDTO)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	getByID(h, w, r, "leagueID", "GetLeague", h.catalog.GetLeague, leagueToDTO)
}

func (h *Handler) ListAthletesByTeam(w http.ResponseWriter, r *http.Request) {
	getByID(h, w, r, "teamID", "ListAthletesByTeam", h.catalog.ListAthletesByTeam, func(athletes []athlete.Athlete) []athleteDTO {
		items := make([]athleteDTO, 0, len(athletes))
		for _, a := range athletes {
			items = append(items, athleteToDTO(a))
		}
		return items
	})
}

// getByID serves the read routes: one positive id path segment, one catalog
// lookup, one DTO.
func getByID[T, D any](
	h *Handler,
	w http.ResponseWriter,
	r *http.Request,
	param, op string,
	load func(context.Context, int64) (T, error),
	toDTO func(T) D,
) {
	id, err := pathID(r, param)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	ctx, span := handlerSpan(r, op, attribute.Int64("athletes.entity_id", id))
	defer span.End()

	item, err := load(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "catalog read failed", "op", op, param, id, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toDTO(item))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}
