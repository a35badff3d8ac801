package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gasesray/shottrack/live"
	"github.com/gasesray/shottrack/models"
	"github.com/gasesray/shottrack/repositories"
)

type RecordEventInput struct {
	PlayerID   int                `json:"player_id"`
	TypeOfStat models.StatType    `json:"type_of_stat"`
	Result     *models.StatResult `json:"result,omitempty"`
	Quarter    int                `json:"quarter"`
	GameTime   string             `json:"game_time"`
	TeamAScore int                `json:"team_A_score"`
	TeamBScore int                `json:"team_B_score"`
}

type PlayByPlayService interface {
	// GetPlayByPlay возвращает ленту матча: по одной отформатированной записи
	// на каждое сохранённое событие, в хронологическом порядке.
	GetPlayByPlay(ctx context.Context, scheduleID int) ([]models.PlayByPlayEntry, error)
	// GetTeamFouls считает командные фолы матча за четверть.
	GetTeamFouls(ctx context.Context, scheduleID, quarter int) (*models.TeamFoulSummary, error)
	// RecordEvent сохраняет событие и рассылает отформатированную запись
	// подписчикам матча.
	RecordEvent(ctx context.Context, scheduleID int, input RecordEventInput) (*models.PlayByPlay, error)
}

type playByPlayService struct {
	playByPlayRepo repositories.PlayByPlayRepository
	scheduleRepo   repositories.ScheduleRepository
	playerRepo     repositories.PlayerRepository
	hub            *live.Hub
}

func NewPlayByPlayService(
	playByPlayRepo repositories.PlayByPlayRepository,
	scheduleRepo repositories.ScheduleRepository,
	playerRepo repositories.PlayerRepository,
	hub *live.Hub,
) PlayByPlayService {
	return &playByPlayService{
		playByPlayRepo: playByPlayRepo,
		scheduleRepo:   scheduleRepo,
		playerRepo:     playerRepo,
		hub:            hub,
	}
}

func (s *playByPlayService) GetPlayByPlay(ctx context.Context, scheduleID int) ([]models.PlayByPlayEntry, error) {
	if _, err := s.scheduleRepo.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, repositories.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	events, err := s.playByPlayRepo.ListByScheduleOrdered(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	entries := make([]models.PlayByPlayEntry, 0, len(events))
	for _, event := range events {
		entry, err := formatEntry(&event)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

func (s *playByPlayService) GetTeamFouls(ctx context.Context, scheduleID, quarter int) (*models.TeamFoulSummary, error) {
	if quarter <= 0 {
		return nil, ErrQuarterOutOfRange
	}
	if _, err := s.scheduleRepo.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, repositories.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	counts, err := s.playByPlayRepo.CountFoulsByTeam(ctx, scheduleID, quarter)
	if err != nil {
		return nil, err
	}

	// Фиксированные два слота: лишние группы (их не должно быть для матча
	// двух команд) отбрасываются.
	summary := &models.TeamFoulSummary{}
	if len(counts) >= 1 {
		summary.Team1 = &counts[0].TeamID
		summary.Team1Fouls = counts[0].Fouls
	}
	if len(counts) >= 2 {
		summary.Team2 = &counts[1].TeamID
		summary.Team2Fouls = counts[1].Fouls
	}
	return summary, nil
}

func (s *playByPlayService) RecordEvent(ctx context.Context, scheduleID int, input RecordEventInput) (*models.PlayByPlay, error) {
	if input.TypeOfStat == "" {
		return nil, ErrStatTypeRequired
	}
	if input.Quarter <= 0 {
		return nil, ErrQuarterOutOfRange
	}
	if _, err := s.scheduleRepo.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, repositories.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	player, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	event := &models.PlayByPlay{
		ScheduleID: scheduleID,
		PlayerID:   input.PlayerID,
		TypeOfStat: input.TypeOfStat,
		Result:     input.Result,
		Quarter:    input.Quarter,
		GameTime:   input.GameTime,
		TeamAScore: input.TeamAScore,
		TeamBScore: input.TeamBScore,
	}
	if err := s.playByPlayRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	event.Player = player

	if s.hub != nil {
		if entry, fmtErr := formatEntry(event); fmtErr == nil {
			s.hub.BroadcastToRoom(live.ScheduleRoom(scheduleID), live.Message{
				Type:    live.MessagePlayByPlay,
				Payload: entry,
			})
		}
	}

	return event, nil
}

// formatEntry превращает событие в запись ленты. Счёт и game_time берутся
// из строки события как есть — источник истины то, что было записано.
func formatEntry(event *models.PlayByPlay) (*models.PlayByPlayEntry, error) {
	name, err := formatPlayerName(event.Player)
	if err != nil {
		return nil, err
	}
	return &models.PlayByPlayEntry{
		GameTime:   event.GameTime,
		PlayerName: name,
		TypeOfStat: event.TypeOfStat,
		Action:     actionText(event.TypeOfStat, event.Result),
		Points:     pointsFor(event.TypeOfStat, event.Result),
		TeamAScore: event.TeamAScore,
		TeamBScore: event.TeamBScore,
	}, nil
}

// formatPlayerName строит "J. Player" из имени и фамилии.
func formatPlayerName(player *models.Player) (string, error) {
	if player == nil {
		return "", fmt.Errorf("%w: missing player record", ErrPlayerNameEmpty)
	}
	first := strings.TrimSpace(player.FirstName)
	last := strings.TrimSpace(player.LastName)
	if first == "" || last == "" {
		return "", fmt.Errorf("%w: player %d", ErrPlayerNameEmpty, player.ID)
	}
	initial := []rune(first)[0]
	return fmt.Sprintf("%c. %s", initial, last), nil
}

func isMade(result *models.StatResult) bool {
	return result != nil && *result == models.ResultMade
}

// actionText — фиксированная фраза по паре (type_of_stat, result).
func actionText(statType models.StatType, result *models.StatResult) string {
	switch statType {
	case models.StatTwoPoint:
		if isMade(result) {
			return "MADE a 2-point field goal"
		}
		return "MISSED a 2-point field goal"
	case models.StatThreePoint:
		if isMade(result) {
			return "MADE a 3-point field goal"
		}
		return "MISSED a 3-point field goal"
	case models.StatFreeThrow:
		if isMade(result) {
			return "MADE a free throw"
		}
		return "MISSED a free throw"
	case models.StatOffensiveRebound:
		return "Grabbed an offensive rebound"
	case models.StatDefensiveRebound:
		return "Grabbed a defensive rebound"
	case models.StatBlock:
		return "Blocked a shot"
	case models.StatSteal:
		return "Stole the ball"
	case models.StatTurnover:
		return "Committed a turnover"
	case models.StatFoul:
		return "Committed a foul"
	case models.StatAssist:
		return "MADE an assist"
	default:
		return "Unknown action"
	}
}

// pointsFor: 2/3/1 за забитые броски, иначе 0 (включая неизвестные типы).
func pointsFor(statType models.StatType, result *models.StatResult) int {
	if !isMade(result) {
		return 0
	}
	switch statType {
	case models.StatTwoPoint:
		return 2
	case models.StatThreePoint:
		return 3
	case models.StatFreeThrow:
		return 1
	default:
		return 0
	}
}
