package models

import "time"

// Schedule представляет один матч между двумя командами турнира.
// Date хранится как календарная дата (Y-m-d), Time — как время начала
// в 24-часовом формате (HH:MM:SS), отдельными колонками, как в БД.
type Schedule struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Date         string    `json:"date" db:"date"`
	Time         string    `json:"time" db:"time"`
	Venue        string    `json:"venue" db:"venue"`
	Team1ID      int       `json:"team1_id" db:"team1_id"`
	Team1Color   *string   `json:"team1_color,omitempty" db:"team1_color"`
	Team2ID      int       `json:"team2_id" db:"team2_id"`
	Team2Color   *string   `json:"team2_color,omitempty" db:"team2_color"`
	Category     *string   `json:"category,omitempty" db:"category"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Team1 *Team `json:"team1,omitempty" db:"-"`
	Team2 *Team `json:"team2,omitempty" db:"-"`
}
