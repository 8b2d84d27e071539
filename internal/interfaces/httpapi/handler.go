package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/ozanbudak/footsight/internal/domain/match"
	"github.com/ozanbudak/footsight/internal/platform/logging"
	"github.com/ozanbudak/footsight/internal/usecase"
)

type Handler struct {
	ingestService   *usecase.IngestService
	sweepService    *usecase.SweepService
	analysisService *usecase.AnalysisService
	pipelineService *usecase.PipelineService
	matchService    *usecase.MatchService
	leagueService   *usecase.LeagueService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	ingestService *usecase.IngestService,
	sweepService *usecase.SweepService,
	analysisService *usecase.AnalysisService,
	pipelineService *usecase.PipelineService,
	matchService *usecase.MatchService,
	leagueService *usecase.LeagueService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		ingestService:   ingestService,
		sweepService:    sweepService,
		analysisService: analysisService,
		pipelineService: pipelineService,
		matchService:    matchService,
		leagueService:   leagueService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) IngestFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestFixtures")
	defer span.End()

	var payload ingestRequestDTO
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, err := h.ingestService.IngestFixtures(ctx, payload.LeagueCode, payload.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "ingest fixtures failed", "league_code", payload.LeagueCode, "season", payload.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ingestResponseDTO{
		LeagueCode: result.LeagueCode,
		Season:     result.Season,
		Processed:  result.Processed,
		Skipped:    result.Skipped,
		Failed:     result.Failed,
	})
}

func (h *Handler) RunSweep(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSweep")
	defer span.End()

	result, err := h.sweepService.Sweep(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "sweep failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunAnalysis")
	defer span.End()

	result, err := h.analysisService.AnalyzePending(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "analysis dispatch failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

// RefreshPipeline runs the sweep and analysis back to back. When only
// the analysis half fails the ingestion counts already committed are
// still reported alongside the error.
func (h *Handler) RefreshPipeline(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshPipeline")
	defer span.End()

	result, err := h.pipelineService.RefreshAndAnalyze(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "pipeline refresh failed", "error", err)
		if result.TotalIngested > 0 || result.Message != "" {
			writeSuccess(ctx, w, http.StatusOK, result)
			return
		}
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(ctx, l))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.leagueService.ListTeams(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(ctx, t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	filter := match.ListFilter{
		Status: r.URL.Query().Get("status"),
		Limit:  queryInt(r, "limit"),
	}
	if leagueID := queryInt(r, "league_id"); leagueID > 0 {
		filter.LeagueID = int64(leagueID)
	}

	matches, err := h.matchService.ListMatches(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	h.writeMatches(ctx, w, matches)
}

func (h *Handler) ListUpcomingMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUpcomingMatches")
	defer span.End()

	matches, err := h.matchService.ListUpcoming(ctx, queryInt(r, "limit"))
	if err != nil {
		h.logger.WarnContext(ctx, "list upcoming matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	h.writeMatches(ctx, w, matches)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("matchID")), 10, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: match id must be numeric", usecase.ErrInvalidInput))
		return
	}

	m, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	names, err := h.leagueService.TeamNamesByID(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve team names failed", "error", err)
		names = nil
	}
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, m, names))
}

// UpdateOdds applies bookmaker odds per entry. A failing entry is
// reported in the response and does not block the remaining entries.
func (h *Handler) UpdateOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateOdds")
	defer span.End()

	var payload oddsUpdateRequestDTO
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	var response oddsUpdateResponseDTO
	for _, entry := range payload.Matches {
		updated, err := h.matchService.UpdateOdds(ctx, entry.HomeTeam, match.Odds{
			Home: entry.HomeOdd,
			Draw: entry.DrawOdd,
			Away: entry.AwayOdd,
		})
		if err != nil {
			h.logger.WarnContext(ctx, "update odds entry failed", "home_team", entry.HomeTeam, "error", err)
			response.Errors = append(response.Errors, fmt.Sprintf("%s: %v", entry.HomeTeam, err))
			continue
		}
		response.Updated += updated
	}

	writeSuccess(ctx, w, http.StatusOK, response)
}

func (h *Handler) writeMatches(ctx context.Context, w http.ResponseWriter, matches []match.Match) {
	names, err := h.leagueService.TeamNamesByID(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve team names failed", "error", err)
		names = nil
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(ctx, m, names))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func queryInt(r *http.Request, key string) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
