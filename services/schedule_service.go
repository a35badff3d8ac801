package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gasesray/shottrack/models"
	"github.com/gasesray/shottrack/repositories"
)

type CreateScheduleInput struct {
	Date       string  `json:"date"` // Y-m-d
	Time       string  `json:"time"` // HH:MM:SS
	Venue      string  `json:"venue"`
	Team1ID    int     `json:"team1_id"`
	Team1Color *string `json:"team1_color,omitempty"`
	Team2ID    int     `json:"team2_id"`
	Team2Color *string `json:"team2_color,omitempty"`
	Category   *string `json:"category,omitempty"`
}

type ScheduleService interface {
	// Create создаёт матч вручную (без импорта) и засевает статистику
	// игроков обоих составов в одной транзакции.
	Create(ctx context.Context, tournamentID int, input CreateScheduleInput) (*models.Schedule, error)
	GetByID(ctx context.Context, id int) (*models.Schedule, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Schedule, error)
	ListStats(ctx context.Context, scheduleID int) ([]models.PlayerStat, error)
	Delete(ctx context.Context, id int) error
}

type scheduleService struct {
	db             *sql.DB
	scheduleRepo   repositories.ScheduleRepository
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	playerRepo     repositories.PlayerRepository
	playerStatRepo repositories.PlayerStatRepository
}

func NewScheduleService(
	db *sql.DB,
	scheduleRepo repositories.ScheduleRepository,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	playerStatRepo repositories.PlayerStatRepository,
) ScheduleService {
	return &scheduleService{
		db:             db,
		scheduleRepo:   scheduleRepo,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		playerStatRepo: playerStatRepo,
	}
}

func (s *scheduleService) Create(ctx context.Context, tournamentID int, input CreateScheduleInput) (*models.Schedule, error) {
	if input.Team1ID == input.Team2ID {
		return nil, ErrScheduleTeamsIdentical
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}

	for _, teamID := range []int{input.Team1ID, input.Team2ID} {
		team, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, err
		}
		if team.TournamentID != tournament.ID {
			return nil, ErrTeamNotInTournament
		}
	}

	schedule := &models.Schedule{
		TournamentID: tournament.ID,
		Date:         input.Date,
		Time:         input.Time,
		Venue:        input.Venue,
		Team1ID:      input.Team1ID,
		Team1Color:   input.Team1Color,
		Team2ID:      input.Team2ID,
		Team2Color:   input.Team2Color,
	}
	if tournament.HasCategories {
		schedule.Category = input.Category
	}

	if err := createScheduleWithStats(ctx, s.db, s.scheduleRepo, s.playerStatRepo, s.playerRepo, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) GetByID(ctx context.Context, id int) (*models.Schedule, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Schedule, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, mapTournamentRepoError(err)
	}
	return s.scheduleRepo.ListByTournament(ctx, tournamentID)
}

func (s *scheduleService) ListStats(ctx context.Context, scheduleID int) ([]models.PlayerStat, error) {
	if _, err := s.scheduleRepo.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, repositories.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return s.playerStatRepo.ListBySchedule(ctx, scheduleID)
}

func (s *scheduleService) Delete(ctx context.Context, id int) error {
	err := s.scheduleRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrScheduleNotFound) {
		return ErrScheduleNotFound
	}
	return err
}
