package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gasesray/shottrack/models"
)

var ErrPlayerStatNotFound = errors.New("player stat line not found")

type PlayerStatRepository interface {
	// CreateBatch вставляет строки статистики одним запросом. Принимает
	// SQLExecutor: посев выполняется в транзакции создания матча.
	CreateBatch(ctx context.Context, exec SQLExecutor, stats []*models.PlayerStat) error
	ListBySchedule(ctx context.Context, scheduleID int) ([]models.PlayerStat, error)
	GetByPlayerAndSchedule(ctx context.Context, playerID, scheduleID int) (*models.PlayerStat, error)
}

type postgresPlayerStatRepository struct {
	db *sql.DB
}

func NewPostgresPlayerStatRepository(db *sql.DB) PlayerStatRepository {
	return &postgresPlayerStatRepository{db: db}
}

func (r *postgresPlayerStatRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPlayerStatRepository) CreateBatch(ctx context.Context, exec SQLExecutor, stats []*models.PlayerStat) error {
	if len(stats) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)

	valueStrings := make([]string, 0, len(stats))
	valueArgs := make([]interface{}, 0, len(stats)*12)
	for i, s := range stats {
		base := i * 12
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
			base+7, base+8, base+9, base+10, base+11, base+12,
		))
		valueArgs = append(valueArgs,
			s.PlayerID, s.ScheduleID, s.TeamID,
			s.Minutes, s.Points, s.Assists, s.Rebounds,
			s.Steals, s.Blocks, s.Turnovers, s.Fouls, s.PlusMinus,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO player_stats
			(player_id, schedule_id, team_id, minutes, points, assists, rebounds,
			 steals, blocks, turnovers, fouls, plus_minus)
		VALUES %s`, strings.Join(valueStrings, ", "))

	_, err := executor.ExecContext(ctx, query, valueArgs...)
	if err != nil {
		return fmt.Errorf("failed to batch insert player stats: %w", err)
	}
	return nil
}

func (r *postgresPlayerStatRepository) ListBySchedule(ctx context.Context, scheduleID int) ([]models.PlayerStat, error) {
	query := `
		SELECT id, player_id, schedule_id, team_id, minutes, points, assists,
			rebounds, steals, blocks, turnovers, fouls, plus_minus
		FROM player_stats
		WHERE schedule_id = $1
		ORDER BY team_id, player_id`

	rows, err := r.db.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]models.PlayerStat, 0)
	for rows.Next() {
		var s models.PlayerStat
		if scanErr := rows.Scan(
			&s.ID, &s.PlayerID, &s.ScheduleID, &s.TeamID, &s.Minutes, &s.Points, &s.Assists,
			&s.Rebounds, &s.Steals, &s.Blocks, &s.Turnovers, &s.Fouls, &s.PlusMinus,
		); scanErr != nil {
			return nil, scanErr
		}
		stats = append(stats, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *postgresPlayerStatRepository) GetByPlayerAndSchedule(ctx context.Context, playerID, scheduleID int) (*models.PlayerStat, error) {
	query := `
		SELECT id, player_id, schedule_id, team_id, minutes, points, assists,
			rebounds, steals, blocks, turnovers, fouls, plus_minus
		FROM player_stats
		WHERE player_id = $1 AND schedule_id = $2`

	s := &models.PlayerStat{}
	err := r.db.QueryRowContext(ctx, query, playerID, scheduleID).Scan(
		&s.ID, &s.PlayerID, &s.ScheduleID, &s.TeamID, &s.Minutes, &s.Points, &s.Assists,
		&s.Rebounds, &s.Steals, &s.Blocks, &s.Turnovers, &s.Fouls, &s.PlusMinus,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerStatNotFound
		}
		return nil, err
	}
	return s, nil
}
