package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gasesray/shottrack/models"
	"github.com/gasesray/shottrack/repositories"
	"golang.org/x/sync/errgroup"
)

// --- Общие хелперы ---

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// createScheduleWithStats создаёт матч и обнулённые строки статистики для
// обоих составов одной транзакцией: частичный сбой откатывает и сам матч.
// Составы загружаются параллельно до открытия транзакции.
func createScheduleWithStats(
	ctx context.Context,
	db *sql.DB,
	scheduleRepo repositories.ScheduleRepository,
	playerStatRepo repositories.PlayerStatRepository,
	playerRepo repositories.PlayerRepository,
	schedule *models.Schedule,
) error {
	var team1Players, team2Players []models.Player

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		team1Players, err = playerRepo.ListByTeam(gCtx, schedule.Team1ID)
		if err != nil {
			return fmt.Errorf("failed to list players of team %d: %w", schedule.Team1ID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		team2Players, err = playerRepo.ListByTeam(gCtx, schedule.Team2ID)
		if err != nil {
			return fmt.Errorf("failed to list players of team %d: %w", schedule.Team2ID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			_ = tx.Rollback()
		}
	}()

	if txErr = scheduleRepo.Create(ctx, tx, schedule); txErr != nil {
		return txErr
	}

	stats := seedStats(schedule.ID, team1Players, team2Players)
	if txErr = playerStatRepo.CreateBatch(ctx, tx, stats); txErr != nil {
		return txErr
	}

	if txErr = tx.Commit(); txErr != nil {
		return fmt.Errorf("failed to commit schedule transaction: %w", txErr)
	}
	return nil
}

// seedStats строит обнулённые строки статистики для обоих составов.
// Пустой состав с любой стороны — не ошибка: просто ноль строк.
func seedStats(scheduleID int, team1Players, team2Players []models.Player) []*models.PlayerStat {
	stats := make([]*models.PlayerStat, 0, len(team1Players)+len(team2Players))
	for _, p := range team1Players {
		stats = append(stats, models.NewZeroPlayerStat(p.ID, scheduleID, p.TeamID))
	}
	for _, p := range team2Players {
		stats = append(stats, models.NewZeroPlayerStat(p.ID, scheduleID, p.TeamID))
	}
	return stats
}

// mapTournamentRepoError переводит ошибки репозитория в ошибки сервисного слоя.
func mapTournamentRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrTournamentNameConflict):
		return ErrTournamentNameConflict
	default:
		return err
	}
}
