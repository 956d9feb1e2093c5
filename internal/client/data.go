package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aidar/lineup-service/internal/domain"
)

// DataClient обращается к сервису данных лиг: проверка подключения и составы
type DataClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDataClient создает новый DataClient
func NewDataClient(baseURL string, httpClient *http.Client) *DataClient {
	return &DataClient{baseURL: baseURL, httpClient: httpClient}
}

type checkLeagueResponse struct {
	Valid bool `json:"valid"`
}

type rosterRequest struct {
	LeagueInfo domain.LeagueInfo `json:"league_info"`
	FACount    int               `json:"fa_count"`
}

// CheckLeague проверяет, что по данным лиги можно получить команду
func (c *DataClient) CheckLeague(ctx context.Context, info domain.LeagueInfo) (bool, error) {
	data, err := postJSON(ctx, c.httpClient, joinURL(c.baseURL, "/data/check_league"), info)
	if err != nil {
		return false, err
	}

	var resp checkLeagueResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return false, fmt.Errorf("%w: decode check_league response: %v", domain.ErrServiceRejected, err)
	}

	return resp.Valid, nil
}

// GetRoster возвращает текущий состав команды без свободных агентов
func (c *DataClient) GetRoster(ctx context.Context, info domain.LeagueInfo) (json.RawMessage, error) {
	return postJSON(ctx, c.httpClient, joinURL(c.baseURL, "/data/get_roster_data"), rosterRequest{
		LeagueInfo: info,
		FACount:    0,
	})
}
