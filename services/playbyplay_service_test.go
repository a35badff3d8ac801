package services

import (
	"context"
	"testing"

	"github.com/gasesray/shottrack/models"
	"github.com/gasesray/shottrack/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Фейки репозиториев ---

type fakeScheduleRepo struct {
	schedules map[int]*models.Schedule
	nextID    int
}

func newFakeScheduleRepo(schedules ...*models.Schedule) *fakeScheduleRepo {
	repo := &fakeScheduleRepo{schedules: make(map[int]*models.Schedule), nextID: 1}
	for _, s := range schedules {
		repo.schedules[s.ID] = s
		if s.ID >= repo.nextID {
			repo.nextID = s.ID + 1
		}
	}
	return repo
}

func (f *fakeScheduleRepo) Create(_ context.Context, _ repositories.SQLExecutor, schedule *models.Schedule) error {
	schedule.ID = f.nextID
	f.nextID++
	f.schedules[schedule.ID] = schedule
	return nil
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id int) (*models.Schedule, error) {
	s, ok := f.schedules[id]
	if !ok {
		return nil, repositories.ErrScheduleNotFound
	}
	return s, nil
}

func (f *fakeScheduleRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Schedule, error) {
	var out []models.Schedule
	for _, s := range f.schedules {
		if s.TournamentID == tournamentID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.schedules[id]; !ok {
		return repositories.ErrScheduleNotFound
	}
	delete(f.schedules, id)
	return nil
}

type fakePlayerRepo struct {
	players map[int]*models.Player
}

func newFakePlayerRepo(players ...*models.Player) *fakePlayerRepo {
	repo := &fakePlayerRepo{players: make(map[int]*models.Player)}
	for _, p := range players {
		repo.players[p.ID] = p
	}
	return repo
}

func (f *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	f.players[player.ID] = player
	return nil
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return p, nil
}

func (f *fakePlayerRepo) ListByTeam(_ context.Context, teamID int) ([]models.Player, error) {
	var out []models.Player
	for _, p := range f.players {
		if p.TeamID == teamID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlayerRepo) Update(_ context.Context, player *models.Player) error {
	f.players[player.ID] = player
	return nil
}

func (f *fakePlayerRepo) Delete(_ context.Context, id int) error {
	delete(f.players, id)
	return nil
}

type fakePlayByPlayRepo struct {
	events []models.PlayByPlay
	counts []models.TeamFoulCount
	nextID int
}

func (f *fakePlayByPlayRepo) Create(_ context.Context, event *models.PlayByPlay) error {
	f.nextID++
	event.ID = f.nextID
	f.events = append(f.events, *event)
	return nil
}

func (f *fakePlayByPlayRepo) ListByScheduleOrdered(_ context.Context, scheduleID int) ([]models.PlayByPlay, error) {
	var out []models.PlayByPlay
	for _, e := range f.events {
		if e.ScheduleID == scheduleID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakePlayByPlayRepo) CountFoulsByTeam(_ context.Context, _, _ int) ([]models.TeamFoulCount, error) {
	return f.counts, nil
}

func resultPtr(r models.StatResult) *models.StatResult {
	return &r
}

// --- Тесты ---

func TestGetPlayByPlayFormatsEntriesInOrder(t *testing.T) {
	james := &models.Player{ID: 1, TeamID: 10, FirstName: "LeBron", LastName: "James"}
	curry := &models.Player{ID: 2, TeamID: 20, FirstName: "Stephen", LastName: "Curry"}

	pbpRepo := &fakePlayByPlayRepo{events: []models.PlayByPlay{
		{ID: 1, ScheduleID: 5, PlayerID: 1, TypeOfStat: models.StatTwoPoint, Result: resultPtr(models.ResultMade), Quarter: 1, GameTime: "09:45", TeamAScore: 2, TeamBScore: 0, Player: james},
		{ID: 2, ScheduleID: 5, PlayerID: 2, TypeOfStat: models.StatThreePoint, Result: resultPtr(models.ResultMissed), Quarter: 1, GameTime: "09:12", TeamAScore: 2, TeamBScore: 0, Player: curry},
		{ID: 3, ScheduleID: 5, PlayerID: 2, TypeOfStat: models.StatFoul, Quarter: 1, GameTime: "08:50", TeamAScore: 2, TeamBScore: 0, Player: curry},
	}}
	scheduleRepo := newFakeScheduleRepo(&models.Schedule{ID: 5, TournamentID: 1})
	svc := NewPlayByPlayService(pbpRepo, scheduleRepo, newFakePlayerRepo(james, curry), nil)

	entries, err := svc.GetPlayByPlay(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "L. James", entries[0].PlayerName)
	assert.Equal(t, "MADE a 2-point field goal", entries[0].Action)
	assert.Equal(t, 2, entries[0].Points)
	assert.Equal(t, 2, entries[0].TeamAScore)
	assert.Equal(t, 0, entries[0].TeamBScore)

	assert.Equal(t, "S. Curry", entries[1].PlayerName)
	assert.Equal(t, "MISSED a 3-point field goal", entries[1].Action)
	assert.Equal(t, 0, entries[1].Points)

	assert.Equal(t, "Committed a foul", entries[2].Action)
	assert.Equal(t, 0, entries[2].Points)
	assert.Equal(t, "08:50", entries[2].GameTime)
}

func TestGetPlayByPlayFailsOnEmptyPlayerName(t *testing.T) {
	nameless := &models.Player{ID: 1, TeamID: 10, FirstName: "  ", LastName: "Smith"}
	pbpRepo := &fakePlayByPlayRepo{events: []models.PlayByPlay{
		{ID: 1, ScheduleID: 5, PlayerID: 1, TypeOfStat: models.StatSteal, Quarter: 1, Player: nameless},
	}}
	scheduleRepo := newFakeScheduleRepo(&models.Schedule{ID: 5})
	svc := NewPlayByPlayService(pbpRepo, scheduleRepo, newFakePlayerRepo(nameless), nil)

	entries, err := svc.GetPlayByPlay(context.Background(), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPlayerNameEmpty)
	assert.Nil(t, entries)
}

func TestGetPlayByPlayScheduleNotFound(t *testing.T) {
	svc := NewPlayByPlayService(&fakePlayByPlayRepo{}, newFakeScheduleRepo(), newFakePlayerRepo(), nil)

	_, err := svc.GetPlayByPlay(context.Background(), 404)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestActionText(t *testing.T) {
	tests := []struct {
		name     string
		statType models.StatType
		result   *models.StatResult
		want     string
	}{
		{"made two", models.StatTwoPoint, resultPtr(models.ResultMade), "MADE a 2-point field goal"},
		{"missed two", models.StatTwoPoint, resultPtr(models.ResultMissed), "MISSED a 2-point field goal"},
		{"two without result", models.StatTwoPoint, nil, "MISSED a 2-point field goal"},
		{"made three", models.StatThreePoint, resultPtr(models.ResultMade), "MADE a 3-point field goal"},
		{"made free throw", models.StatFreeThrow, resultPtr(models.ResultMade), "MADE a free throw"},
		{"missed free throw", models.StatFreeThrow, resultPtr(models.ResultMissed), "MISSED a free throw"},
		{"assist", models.StatAssist, nil, "MADE an assist"},
		{"offensive rebound", models.StatOffensiveRebound, nil, "Grabbed an offensive rebound"},
		{"defensive rebound", models.StatDefensiveRebound, nil, "Grabbed a defensive rebound"},
		{"block", models.StatBlock, nil, "Blocked a shot"},
		{"steal", models.StatSteal, nil, "Stole the ball"},
		{"turnover", models.StatTurnover, nil, "Committed a turnover"},
		{"foul", models.StatFoul, nil, "Committed a foul"},
		{"unknown type", models.StatType("half_court_heave"), resultPtr(models.ResultMade), "Unknown action"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, actionText(tt.statType, tt.result))
		})
	}
}

func TestPointsFor(t *testing.T) {
	tests := []struct {
		name     string
		statType models.StatType
		result   *models.StatResult
		want     int
	}{
		{"made two", models.StatTwoPoint, resultPtr(models.ResultMade), 2},
		{"made three", models.StatThreePoint, resultPtr(models.ResultMade), 3},
		{"made free throw", models.StatFreeThrow, resultPtr(models.ResultMade), 1},
		{"missed two", models.StatTwoPoint, resultPtr(models.ResultMissed), 0},
		{"no result", models.StatThreePoint, nil, 0},
		{"made non-shot", models.StatSteal, resultPtr(models.ResultMade), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pointsFor(tt.statType, tt.result))
		})
	}
}

func TestFormatPlayerName(t *testing.T) {
	name, err := formatPlayerName(&models.Player{ID: 1, FirstName: "LeBron", LastName: "James"})
	require.NoError(t, err)
	assert.Equal(t, "L. James", name)

	// Инициал должен корректно браться из многобайтовых имён.
	name, err = formatPlayerName(&models.Player{ID: 2, FirstName: "Žan", LastName: "Novak"})
	require.NoError(t, err)
	assert.Equal(t, "Ž. Novak", name)

	_, err = formatPlayerName(&models.Player{ID: 3, FirstName: "", LastName: "Smith"})
	assert.ErrorIs(t, err, ErrPlayerNameEmpty)

	_, err = formatPlayerName(&models.Player{ID: 4, FirstName: "John", LastName: "   "})
	assert.ErrorIs(t, err, ErrPlayerNameEmpty)

	_, err = formatPlayerName(nil)
	assert.ErrorIs(t, err, ErrPlayerNameEmpty)
}

func TestGetTeamFoulsFillsFixedSlots(t *testing.T) {
	scheduleRepo := newFakeScheduleRepo(&models.Schedule{ID: 5})

	t.Run("both teams fouled", func(t *testing.T) {
		pbpRepo := &fakePlayByPlayRepo{counts: []models.TeamFoulCount{
			{TeamID: 10, Fouls: 3},
			{TeamID: 20, Fouls: 1},
		}}
		svc := NewPlayByPlayService(pbpRepo, scheduleRepo, newFakePlayerRepo(), nil)

		summary, err := svc.GetTeamFouls(context.Background(), 5, 2)
		require.NoError(t, err)
		require.NotNil(t, summary.Team1)
		require.NotNil(t, summary.Team2)
		assert.Equal(t, 10, *summary.Team1)
		assert.Equal(t, 3, summary.Team1Fouls)
		assert.Equal(t, 20, *summary.Team2)
		assert.Equal(t, 1, summary.Team2Fouls)
	})

	t.Run("one team fouled", func(t *testing.T) {
		pbpRepo := &fakePlayByPlayRepo{counts: []models.TeamFoulCount{{TeamID: 20, Fouls: 2}}}
		svc := NewPlayByPlayService(pbpRepo, scheduleRepo, newFakePlayerRepo(), nil)

		summary, err := svc.GetTeamFouls(context.Background(), 5, 1)
		require.NoError(t, err)
		require.NotNil(t, summary.Team1)
		assert.Equal(t, 20, *summary.Team1)
		assert.Equal(t, 2, summary.Team1Fouls)
		assert.Nil(t, summary.Team2)
		assert.Equal(t, 0, summary.Team2Fouls)
	})

	t.Run("no fouls", func(t *testing.T) {
		svc := NewPlayByPlayService(&fakePlayByPlayRepo{}, scheduleRepo, newFakePlayerRepo(), nil)

		summary, err := svc.GetTeamFouls(context.Background(), 5, 4)
		require.NoError(t, err)
		assert.Nil(t, summary.Team1)
		assert.Nil(t, summary.Team2)
		assert.Equal(t, 0, summary.Team1Fouls)
		assert.Equal(t, 0, summary.Team2Fouls)
	})
}

func TestGetTeamFoulsRejectsBadQuarter(t *testing.T) {
	svc := NewPlayByPlayService(&fakePlayByPlayRepo{}, newFakeScheduleRepo(&models.Schedule{ID: 5}), newFakePlayerRepo(), nil)

	_, err := svc.GetTeamFouls(context.Background(), 5, 0)
	assert.ErrorIs(t, err, ErrQuarterOutOfRange)

	_, err = svc.GetTeamFouls(context.Background(), 5, -1)
	assert.ErrorIs(t, err, ErrQuarterOutOfRange)
}

func TestRecordEvent(t *testing.T) {
	player := &models.Player{ID: 7, TeamID: 10, FirstName: "Luka", LastName: "Doncic"}
	scheduleRepo := newFakeScheduleRepo(&models.Schedule{ID: 5})
	playerRepo := newFakePlayerRepo(player)

	t.Run("persists and returns the event", func(t *testing.T) {
		pbpRepo := &fakePlayByPlayRepo{}
		svc := NewPlayByPlayService(pbpRepo, scheduleRepo, playerRepo, nil)

		event, err := svc.RecordEvent(context.Background(), 5, RecordEventInput{
			PlayerID:   7,
			TypeOfStat: models.StatThreePoint,
			Result:     resultPtr(models.ResultMade),
			Quarter:    3,
			GameTime:   "04:21",
			TeamAScore: 61,
			TeamBScore: 58,
		})
		require.NoError(t, err)
		assert.NotZero(t, event.ID)
		assert.Equal(t, 5, event.ScheduleID)
		assert.Equal(t, models.StatThreePoint, event.TypeOfStat)
		require.NotNil(t, event.Player)
		assert.Equal(t, "Doncic", event.Player.LastName)
		require.Len(t, pbpRepo.events, 1)
	})

	t.Run("requires type_of_stat", func(t *testing.T) {
		svc := NewPlayByPlayService(&fakePlayByPlayRepo{}, scheduleRepo, playerRepo, nil)
		_, err := svc.RecordEvent(context.Background(), 5, RecordEventInput{PlayerID: 7, Quarter: 1})
		assert.ErrorIs(t, err, ErrStatTypeRequired)
	})

	t.Run("requires positive quarter", func(t *testing.T) {
		svc := NewPlayByPlayService(&fakePlayByPlayRepo{}, scheduleRepo, playerRepo, nil)
		_, err := svc.RecordEvent(context.Background(), 5, RecordEventInput{PlayerID: 7, TypeOfStat: models.StatSteal})
		assert.ErrorIs(t, err, ErrQuarterOutOfRange)
	})

	t.Run("unknown player", func(t *testing.T) {
		svc := NewPlayByPlayService(&fakePlayByPlayRepo{}, scheduleRepo, playerRepo, nil)
		_, err := svc.RecordEvent(context.Background(), 5, RecordEventInput{PlayerID: 404, TypeOfStat: models.StatSteal, Quarter: 1})
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("unknown schedule", func(t *testing.T) {
		svc := NewPlayByPlayService(&fakePlayByPlayRepo{}, scheduleRepo, playerRepo, nil)
		_, err := svc.RecordEvent(context.Background(), 404, RecordEventInput{PlayerID: 7, TypeOfStat: models.StatSteal, Quarter: 1})
		assert.ErrorIs(t, err, ErrScheduleNotFound)
	})
}
