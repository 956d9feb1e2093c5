package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aidar/lineup-service/internal/domain"
	"github.com/aidar/lineup-service/internal/middleware"
	"github.com/aidar/lineup-service/internal/service"
)

// LineupHandler обрабатывает эндпоинты составов
type LineupHandler struct {
	lineupService *service.LineupService
	logger        *slog.Logger
}

// NewLineupHandler создает новый LineupHandler
func NewLineupHandler(lineupService *service.LineupService, logger *slog.Logger) *LineupHandler {
	return &LineupHandler{
		lineupService: lineupService,
		logger:        logger,
	}
}

// GenerateLineupRequest представляет тело запроса на генерацию состава
type GenerateLineupRequest struct {
	SelectedTeam int64   `json:"selected_team" validate:"required,gt=0"`
	Week         int     `json:"week" validate:"required,gt=0"`
	Threshold    float64 `json:"threshold" validate:"gte=0"`
}

// SaveLineupRequest представляет тело запроса на сохранение состава
type SaveLineupRequest struct {
	SelectedTeam int64           `json:"selected_team" validate:"required,gt=0"`
	LineupInfo   json.RawMessage `json:"lineup_info" validate:"required"`
}

// GenerateLineup обрабатывает POST /lineups/generate
func (h *LineupHandler) GenerateLineup(w http.ResponseWriter, r *http.Request) {
	var req GenerateLineupRequest
	if err := decodeAndValidate(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	lineup, err := h.lineupService.GenerateLineup(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.SelectedTeam, domain.GenerateLineupParams{
		Week:      req.Week,
		Threshold: req.Threshold,
	})
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, lineup)
}

// GetLineups обрабатывает GET /lineups?selected_team=...
func (h *LineupHandler) GetLineups(w http.ResponseWriter, r *http.Request) {
	teamID, err := queryInt64(r, "selected_team")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	result, err := h.lineupService.ListLineups(r.Context(), middleware.GetUserIDFromContext(r.Context()), teamID)
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, result)
}

// SaveLineup обрабатывает PUT /lineups/save. Ошибки сохранения отражаются флагами
func (h *LineupHandler) SaveLineup(w http.ResponseWriter, r *http.Request) {
	var req SaveLineupRequest
	if err := decodeAndValidate(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	if !isJSONContainer(req.LineupInfo) {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "lineup_info must be an object or an array")
		return
	}

	result := h.lineupService.SaveLineup(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.SelectedTeam, req.LineupInfo)
	RespondWithJSON(w, r, http.StatusOK, result)
}

// RemoveLineup обрабатывает DELETE /lineups/remove?lineup_id=...
func (h *LineupHandler) RemoveLineup(w http.ResponseWriter, r *http.Request) {
	lineupID, err := queryInt64(r, "lineup_id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	ok, err := h.lineupService.RemoveLineup(r.Context(), middleware.GetUserIDFromContext(r.Context()), lineupID)
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: ok})
}

// isJSONContainer проверяет, что уже разобранный JSON - объект или массив
func isJSONContainer(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
