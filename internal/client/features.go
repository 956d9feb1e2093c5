package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aidar/lineup-service/internal/domain"
)

// FeaturesClient обращается к сервису генерации составов
type FeaturesClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewFeaturesClient создает новый FeaturesClient
func NewFeaturesClient(baseURL string, httpClient *http.Client) *FeaturesClient {
	return &FeaturesClient{baseURL: baseURL, httpClient: httpClient}
}

type generateLineupRequest struct {
	LeagueID  int64   `json:"league_id"`
	TeamName  string  `json:"team_name"`
	EspnS2    string  `json:"espn_s2"`
	SWID      string  `json:"swid"`
	Year      int     `json:"year"`
	Threshold float64 `json:"threshold"`
	Week      int     `json:"week"`
}

// GenerateLineup запрашивает состав на неделю и возвращает ответ сервиса без изменений
func (c *FeaturesClient) GenerateLineup(ctx context.Context, info domain.LeagueInfo, params domain.GenerateLineupParams) (json.RawMessage, error) {
	return postJSON(ctx, c.httpClient, joinURL(c.baseURL, "/generate-lineup"), generateLineupRequest{
		LeagueID:  info.LeagueID,
		TeamName:  info.TeamName,
		EspnS2:    info.EspnS2,
		SWID:      info.SWID,
		Year:      info.Year,
		Threshold: params.Threshold,
		Week:      params.Week,
	})
}
