package domain

import "strconv"

// LeagueInfo содержит данные подключения к фэнтези-лиге.
// EspnS2 и SWID нужны только для приватных лиг.
type LeagueInfo struct {
	LeagueID int64  `json:"league_id" validate:"required,gt=0"`
	TeamName string `json:"team_name" validate:"required"`
	EspnS2   string `json:"espn_s2,omitempty"`
	SWID     string `json:"swid,omitempty"`
	Year     int    `json:"year" validate:"required,gt=0"`
}

// Identifier возвращает ключ дедупликации команды: league id + название команды
func (l LeagueInfo) Identifier() string {
	return strconv.FormatInt(l.LeagueID, 10) + l.TeamName
}

// Team представляет связь пользователя с командой в лиге
type Team struct {
	TeamID     int64      `json:"team_id"`
	UserID     int64      `json:"-"`
	Identifier string     `json:"-"`
	Info       LeagueInfo `json:"team_info"`
}
