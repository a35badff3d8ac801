package models

// PlayerStat — статистическая строка игрока в рамках одного матча.
// Создаётся с нулевыми значениями одновременно с созданием Schedule.
type PlayerStat struct {
	ID         int `json:"id" db:"id"`
	PlayerID   int `json:"player_id" db:"player_id"`
	ScheduleID int `json:"schedule_id" db:"schedule_id"`
	TeamID     int `json:"team_id" db:"team_id"`
	Minutes    int `json:"minutes" db:"minutes"`
	Points     int `json:"points" db:"points"`
	Assists    int `json:"assists" db:"assists"`
	Rebounds   int `json:"rebounds" db:"rebounds"`
	Steals     int `json:"steals" db:"steals"`
	Blocks     int `json:"blocks" db:"blocks"`
	Turnovers  int `json:"turnovers" db:"turnovers"`
	Fouls      int `json:"fouls" db:"fouls"`
	PlusMinus  int `json:"plus_minus" db:"plus_minus"`
}

// NewZeroPlayerStat возвращает обнулённую строку статистики для пары (игрок, матч).
func NewZeroPlayerStat(playerID, scheduleID, teamID int) *PlayerStat {
	return &PlayerStat{
		PlayerID:   playerID,
		ScheduleID: scheduleID,
		TeamID:     teamID,
	}
}
