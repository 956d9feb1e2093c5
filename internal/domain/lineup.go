package domain

import "encoding/json"

// Lineup представляет сохраненный состав команды
type Lineup struct {
	LineupID int64           `json:"lineup_id"`
	TeamID   int64           `json:"team_id"`
	Info     json.RawMessage `json:"lineup_info"`
	Hash     string          `json:"-"`
}

// GenerateLineupParams - параметры генерации состава на неделю
type GenerateLineupParams struct {
	Week      int
	Threshold float64
}
