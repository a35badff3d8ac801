package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gasesray/shottrack/models"
	"github.com/lib/pq"
)

var (
	ErrScheduleNotFound    = errors.New("schedule not found")
	ErrScheduleInvalidTeam = errors.New("invalid team reference in schedule")
)

type ScheduleRepository interface {
	// Create принимает SQLExecutor, чтобы вставка матча и посев статистики
	// игроков выполнялись в одной транзакции.
	Create(ctx context.Context, exec SQLExecutor, schedule *models.Schedule) error
	GetByID(ctx context.Context, id int) (*models.Schedule, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Schedule, error)
	Delete(ctx context.Context, id int) error
}

type postgresScheduleRepository struct {
	db *sql.DB
}

func NewPostgresScheduleRepository(db *sql.DB) ScheduleRepository {
	return &postgresScheduleRepository{db: db}
}

func (r *postgresScheduleRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresScheduleRepository) Create(ctx context.Context, exec SQLExecutor, s *models.Schedule) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO schedules
			(tournament_id, date, time, venue, team1_id, team1_color, team2_id, team2_color, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		s.TournamentID, s.Date, s.Time, s.Venue,
		s.Team1ID, s.Team1Color, s.Team2ID, s.Team2Color, s.Category,
	).Scan(&s.ID, &s.CreatedAt)

	return r.handleScheduleError(err)
}

func (r *postgresScheduleRepository) GetByID(ctx context.Context, id int) (*models.Schedule, error) {
	query := `
		SELECT id, tournament_id, date, time, venue,
			team1_id, team1_color, team2_id, team2_color, category, created_at
		FROM schedules
		WHERE id = $1`

	s := &models.Schedule{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.TournamentID, &s.Date, &s.Time, &s.Venue,
		&s.Team1ID, &s.Team1Color, &s.Team2ID, &s.Team2Color, &s.Category, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *postgresScheduleRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Schedule, error) {
	query := `
		SELECT id, tournament_id, date, time, venue,
			team1_id, team1_color, team2_id, team2_color, category, created_at
		FROM schedules
		WHERE tournament_id = $1
		ORDER BY date, time`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]models.Schedule, 0)
	for rows.Next() {
		var s models.Schedule
		if scanErr := rows.Scan(
			&s.ID, &s.TournamentID, &s.Date, &s.Time, &s.Venue,
			&s.Team1ID, &s.Team1Color, &s.Team2ID, &s.Team2Color, &s.Category, &s.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		schedules = append(schedules, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *postgresScheduleRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM schedules WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrScheduleNotFound)
}

func (r *postgresScheduleRepository) handleScheduleError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "schedules_tournament_id_fkey":
				return ErrTournamentNotFound
			case "schedules_team1_id_fkey", "schedules_team2_id_fkey":
				return ErrScheduleInvalidTeam
			}
		}
	}
	return err
}
