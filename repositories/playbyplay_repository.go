package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gasesray/shottrack/models"
	"github.com/lib/pq"
)

var (
	ErrPlayByPlayNotFound        = errors.New("play-by-play event not found")
	ErrPlayByPlayInvalidSchedule = errors.New("invalid schedule reference in play-by-play event")
	ErrPlayByPlayInvalidPlayer   = errors.New("invalid player reference in play-by-play event")
)

// Виды событий, которые считаются фолами при подсчёте командных фолов.
var foulStatTypes = []string{
	string(models.StatFoul),
	string(models.StatTechnicalFoul),
	string(models.StatUnsportsmanlikeFoul),
	string(models.StatDisqualifyingFoul),
}

type PlayByPlayRepository interface {
	Create(ctx context.Context, event *models.PlayByPlay) error
	// ListByScheduleOrdered возвращает события матча по возрастанию created_at
	// (хронология игры) вместе с данными игрока для форматирования.
	ListByScheduleOrdered(ctx context.Context, scheduleID int) ([]models.PlayByPlay, error)
	// CountFoulsByTeam группирует фолы матча за четверть по команде игрока.
	// Группы упорядочены по времени первого фола, чтобы слоты ответа были
	// детерминированы.
	CountFoulsByTeam(ctx context.Context, scheduleID, quarter int) ([]models.TeamFoulCount, error)
}

type postgresPlayByPlayRepository struct {
	db *sql.DB
}

func NewPostgresPlayByPlayRepository(db *sql.DB) PlayByPlayRepository {
	return &postgresPlayByPlayRepository{db: db}
}

func (r *postgresPlayByPlayRepository) Create(ctx context.Context, e *models.PlayByPlay) error {
	query := `
		INSERT INTO play_by_plays
			(schedule_id, player_id, type_of_stat, result, quarter, game_time, team_a_score, team_b_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		e.ScheduleID, e.PlayerID, e.TypeOfStat, e.Result, e.Quarter,
		e.GameTime, e.TeamAScore, e.TeamBScore,
	).Scan(&e.ID, &e.CreatedAt)

	return r.handlePlayByPlayError(err)
}

func (r *postgresPlayByPlayRepository) ListByScheduleOrdered(ctx context.Context, scheduleID int) ([]models.PlayByPlay, error) {
	query := `
		SELECT
			p.id, p.schedule_id, p.player_id, p.type_of_stat, p.result,
			p.quarter, p.game_time, p.team_a_score, p.team_b_score, p.created_at,
			pl.id, pl.team_id, pl.first_name, pl.last_name
		FROM play_by_plays p
		JOIN players pl ON pl.id = p.player_id
		WHERE p.schedule_id = $1
		ORDER BY p.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.PlayByPlay, 0)
	for rows.Next() {
		var e models.PlayByPlay
		var pl models.Player
		if scanErr := rows.Scan(
			&e.ID, &e.ScheduleID, &e.PlayerID, &e.TypeOfStat, &e.Result,
			&e.Quarter, &e.GameTime, &e.TeamAScore, &e.TeamBScore, &e.CreatedAt,
			&pl.ID, &pl.TeamID, &pl.FirstName, &pl.LastName,
		); scanErr != nil {
			return nil, scanErr
		}
		e.Player = &pl
		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *postgresPlayByPlayRepository) CountFoulsByTeam(ctx context.Context, scheduleID, quarter int) ([]models.TeamFoulCount, error) {
	query := `
		SELECT pl.team_id, COUNT(p.id) AS fouls
		FROM play_by_plays p
		JOIN players pl ON pl.id = p.player_id
		WHERE p.schedule_id = $1
		  AND p.quarter = $2
		  AND p.type_of_stat = ANY($3)
		GROUP BY pl.team_id
		ORDER BY MIN(p.created_at)`

	rows, err := r.db.QueryContext(ctx, query, scheduleID, quarter, pq.Array(foulStatTypes))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]models.TeamFoulCount, 0, 2)
	for rows.Next() {
		var c models.TeamFoulCount
		if scanErr := rows.Scan(&c.TeamID, &c.Fouls); scanErr != nil {
			return nil, scanErr
		}
		counts = append(counts, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *postgresPlayByPlayRepository) handlePlayByPlayError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "play_by_plays_schedule_id_fkey":
				return ErrPlayByPlayInvalidSchedule
			case "play_by_plays_player_id_fkey":
				return ErrPlayByPlayInvalidPlayer
			}
		}
	}
	return err
}
