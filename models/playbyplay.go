package models

import "time"

// StatType представляет виды игровых событий, соответствующие ENUM в БД.
type StatType string

const (
	StatTwoPoint             StatType = "two_point"
	StatThreePoint           StatType = "three_point"
	StatFreeThrow            StatType = "free_throw"
	StatAssist               StatType = "assist"
	StatOffensiveRebound     StatType = "offensive_rebound"
	StatDefensiveRebound     StatType = "defensive_rebound"
	StatBlock                StatType = "block"
	StatSteal                StatType = "steal"
	StatTurnover             StatType = "turnover"
	StatFoul                 StatType = "foul"
	StatTechnicalFoul        StatType = "technical_foul"
	StatUnsportsmanlikeFoul  StatType = "unsportsmanlike_foul"
	StatDisqualifyingFoul    StatType = "disqualifying_foul"
)

type StatResult string

const (
	ResultMade   StatResult = "made"
	ResultMissed StatResult = "missed"
)

// PlayByPlay — одно игровое событие. Строки неизменяемы после записи;
// порядок по created_at восстанавливает ход игры.
type PlayByPlay struct {
	ID         int         `json:"id" db:"id"`
	ScheduleID int         `json:"schedule_id" db:"schedule_id"`
	PlayerID   int         `json:"player_id" db:"player_id"`
	TypeOfStat StatType    `json:"type_of_stat" db:"type_of_stat"`
	Result     *StatResult `json:"result,omitempty" db:"result"`
	Quarter    int         `json:"quarter" db:"quarter"`
	GameTime   string      `json:"game_time" db:"game_time"`
	TeamAScore int         `json:"team_A_score" db:"team_a_score"`
	TeamBScore int         `json:"team_B_score" db:"team_b_score"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`

	Player *Player `json:"player,omitempty" db:"-"`
}

// PlayByPlayEntry — отформатированная запись ленты для ответа API.
type PlayByPlayEntry struct {
	GameTime   string   `json:"game_time"`
	PlayerName string   `json:"player_name"`
	TypeOfStat StatType `json:"type_of_stat"`
	Action     string   `json:"action"`
	Points     int      `json:"points"`
	TeamAScore int      `json:"team_A_score"`
	TeamBScore int      `json:"team_B_score"`
}

// TeamFoulCount — результат группировки фолов по команде за четверть.
type TeamFoulCount struct {
	TeamID int `json:"team_id"`
	Fouls  int `json:"fouls"`
}

// TeamFoulSummary — фиксированная двухслотовая структура ответа.
type TeamFoulSummary struct {
	Team1      *int `json:"team_1"`
	Team1Fouls int  `json:"team_1_fouls"`
	Team2      *int `json:"team_2"`
	Team2Fouls int  `json:"team_2_fouls"`
}
