package handler

import (
	"log/slog"
	"net/http"

	"github.com/aidar/lineup-service/internal/domain"
	"github.com/aidar/lineup-service/internal/middleware"
	"github.com/aidar/lineup-service/internal/service"
)

// TeamHandler обрабатывает эндпоинты команд
type TeamHandler struct {
	teamService *service.TeamService
	logger      *slog.Logger
}

// NewTeamHandler создает новый TeamHandler
func NewTeamHandler(teamService *service.TeamService, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		logger:      logger,
	}
}

// GetTeamsResponse представляет список команд пользователя
type GetTeamsResponse struct {
	Teams []*domain.Team `json:"teams"`
}

// AddTeamRequest представляет тело запроса на добавление команды
type AddTeamRequest struct {
	LeagueInfo domain.LeagueInfo `json:"league_info"`
}

// RemoveTeamRequest представляет тело запроса на удаление команды
type RemoveTeamRequest struct {
	TeamID int64 `json:"team_id" validate:"required,gt=0"`
}

// UpdateTeamRequest представляет тело запроса на изменение данных лиги
type UpdateTeamRequest struct {
	TeamID     int64             `json:"team_id" validate:"required,gt=0"`
	LeagueInfo domain.LeagueInfo `json:"league_info"`
}

// GetTeams обрабатывает GET /teams
func (h *TeamHandler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeams(r.Context(), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, GetTeamsResponse{Teams: teams})
}

// AddTeam обрабатывает POST /teams/add
func (h *TeamHandler) AddTeam(w http.ResponseWriter, r *http.Request) {
	var req AddTeamRequest
	if err := decodeAndValidate(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	result, err := h.teamService.AddTeam(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.LeagueInfo)
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, result)
}

// RemoveTeam обрабатывает DELETE /teams/remove
func (h *TeamHandler) RemoveTeam(w http.ResponseWriter, r *http.Request) {
	var req RemoveTeamRequest
	if err := decodeAndValidate(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	ok, err := h.teamService.RemoveTeam(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.TeamID)
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: ok})
}

// UpdateTeam обрабатывает PUT /teams/update
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var req UpdateTeamRequest
	if err := decodeAndValidate(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	ok, err := h.teamService.UpdateTeam(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.TeamID, req.LeagueInfo)
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: ok})
}

// ViewTeam обрабатывает GET /teams/view?team_id=...
// Возвращает ответ сервиса данных без изменений
func (h *TeamHandler) ViewTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := queryInt64(r, "team_id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	roster, err := h.teamService.ViewTeam(r.Context(), middleware.GetUserIDFromContext(r.Context()), teamID)
	if err != nil {
		HandleError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, roster)
}
