package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/gasesray/shottrack/models"
	"github.com/gasesray/shottrack/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
}

func newFakeTournamentRepo(tournaments ...*models.Tournament) *fakeTournamentRepo {
	repo := &fakeTournamentRepo{tournaments: make(map[int]*models.Tournament)}
	for _, tr := range tournaments {
		repo.tournaments[tr.ID] = tr
	}
	return repo
}

func (f *fakeTournamentRepo) Create(_ context.Context, tournament *models.Tournament) error {
	f.tournaments[tournament.ID] = tournament
	return nil
}

func (f *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	tr, ok := f.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return tr, nil
}

func (f *fakeTournamentRepo) List(_ context.Context, _, _ int) ([]models.Tournament, error) {
	var out []models.Tournament
	for _, tr := range f.tournaments {
		out = append(out, *tr)
	}
	return out, nil
}

func (f *fakeTournamentRepo) Update(_ context.Context, tournament *models.Tournament) error {
	f.tournaments[tournament.ID] = tournament
	return nil
}

func (f *fakeTournamentRepo) Delete(_ context.Context, id int) error {
	delete(f.tournaments, id)
	return nil
}

func (f *fakeTournamentRepo) UpdateLogoKey(_ context.Context, _ int, _ *string) error {
	return nil
}

type fakeTeamRepo struct {
	teams map[string]*models.Team // по имени, в рамках одного турнира
}

func newFakeTeamRepo(teams ...*models.Team) *fakeTeamRepo {
	repo := &fakeTeamRepo{teams: make(map[string]*models.Team)}
	for _, team := range teams {
		repo.teams[team.Name] = team
	}
	return repo
}

func (f *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	f.teams[team.Name] = team
	return nil
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	for _, team := range f.teams {
		if team.ID == id {
			return team, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (f *fakeTeamRepo) GetByNameAndTournament(_ context.Context, name string, tournamentID int) (*models.Team, error) {
	team, ok := f.teams[name]
	if !ok || team.TournamentID != tournamentID {
		return nil, repositories.ErrTeamNotFound
	}
	return team, nil
}

func (f *fakeTeamRepo) ListByTournament(_ context.Context, tournamentID int) ([]models.Team, error) {
	var out []models.Team
	for _, team := range f.teams {
		if team.TournamentID == tournamentID {
			out = append(out, *team)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) Update(_ context.Context, team *models.Team) error {
	f.teams[team.Name] = team
	return nil
}

func (f *fakeTeamRepo) Delete(_ context.Context, _ int) error { return nil }

func (f *fakeTeamRepo) UpdateLogoKey(_ context.Context, _ int, _ *string) error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Тесты разбора и валидации ---

func TestParseImportDate(t *testing.T) {
	got, err := parseImportDate("7/4/2025")
	require.NoError(t, err)
	assert.Equal(t, "2025-07-04", got)

	got, err = parseImportDate("12/31/2024")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", got)

	_, err = parseImportDate("13/40/2024")
	assert.ErrorIs(t, err, ErrImportInvalidDate)

	_, err = parseImportDate("2024-01-01")
	assert.ErrorIs(t, err, ErrImportInvalidDate)
}

func TestParseImportTime(t *testing.T) {
	got, err := parseImportTime("2:30 PM")
	require.NoError(t, err)
	assert.Equal(t, "14:30:00", got)

	got, err = parseImportTime("12:00 AM")
	require.NoError(t, err)
	assert.Equal(t, "00:00:00", got)

	got, err = parseImportTime("12:00 PM")
	require.NoError(t, err)
	assert.Equal(t, "12:00:00", got)

	_, err = parseImportTime("25:00")
	assert.ErrorIs(t, err, ErrImportInvalidTime)

	_, err = parseImportTime("14:30")
	assert.ErrorIs(t, err, ErrImportInvalidTime)
}

func TestValidateRow(t *testing.T) {
	valid := scheduleRow{
		Line:      2,
		Date:      "7/4/2025",
		Time:      "2:30 PM",
		Venue:     "Main Arena",
		Team1Name: "Hawks",
		Team2Name: "Bulls",
	}

	assert.NoError(t, validateRow(valid))

	tests := []struct {
		name    string
		mutate  func(*scheduleRow)
		wantErr error
	}{
		{"missing date", func(r *scheduleRow) { r.Date = "" }, ErrImportDateRequired},
		{"missing time", func(r *scheduleRow) { r.Time = "" }, ErrImportTimeRequired},
		{"missing venue", func(r *scheduleRow) { r.Venue = "" }, ErrImportVenueRequired},
		{"venue too long", func(r *scheduleRow) { r.Venue = strings.Repeat("x", 256) }, ErrImportVenueTooLong},
		{"missing team name", func(r *scheduleRow) { r.Team2Name = "" }, ErrImportTeamNameRequired},
		{"team name too long", func(r *scheduleRow) { r.Team1Name = strings.Repeat("x", 256) }, ErrImportTeamNameTooLong},
		{"identical team names", func(r *scheduleRow) { r.Team2Name = r.Team1Name }, ErrImportTeamNamesEqual},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := valid
			tt.mutate(&row)
			assert.ErrorIs(t, validateRow(row), tt.wantErr)
		})
	}
}

func TestRowsFromRecords(t *testing.T) {
	t.Run("maps columns by header and numbers lines", func(t *testing.T) {
		records := [][]string{
			{" Date ", "TIME", "venue", "team_1_name", "team_2_name", "category"},
			{"7/4/2025", "2:30 PM", "Main Arena", "Hawks", "Bulls", "U18"},
			{"", "", "", "", "", ""}, // полностью пустая строка пропускается
			{"7/5/2025", "6:00 PM", "Court B", "Hawks", "Celtics"},
		}

		rows, err := rowsFromRecords(records)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, 2, rows[0].Line)
		assert.Equal(t, "7/4/2025", rows[0].Date)
		assert.Equal(t, "U18", rows[0].Category)

		// Строка без хвостовой колонки не должна ломать разбор.
		assert.Equal(t, 4, rows[1].Line)
		assert.Equal(t, "Celtics", rows[1].Team2Name)
		assert.Equal(t, "", rows[1].Category)
	})

	t.Run("missing required column", func(t *testing.T) {
		records := [][]string{
			{"date", "time", "venue", "team_1_name"},
			{"7/4/2025", "2:30 PM", "Main Arena", "Hawks"},
		}
		_, err := rowsFromRecords(records)
		assert.ErrorIs(t, err, ErrImportMissingHeader)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := rowsFromRecords(nil)
		assert.ErrorIs(t, err, ErrImportMissingHeader)
	})
}

// --- Тесты ImportFile ---

func TestImportFileRejectsUnsupportedExtension(t *testing.T) {
	svc := NewScheduleImportService(nil, newFakeTournamentRepo(), newFakeTeamRepo(), newFakePlayerRepo(), newFakeScheduleRepo(), nil, discardLogger())

	_, err := svc.ImportFile(context.Background(), 1, "schedule.pdf", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrImportUnsupportedFile)
}

func TestImportFileTournamentNotFound(t *testing.T) {
	csvBody := "date,time,venue,team_1_name,team_2_name\n7/4/2025,2:30 PM,Main Arena,Hawks,Bulls\n"
	svc := NewScheduleImportService(nil, newFakeTournamentRepo(), newFakeTeamRepo(), newFakePlayerRepo(), newFakeScheduleRepo(), nil, discardLogger())

	_, err := svc.ImportFile(context.Background(), 42, "schedule.csv", strings.NewReader(csvBody))
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestImportFileCollectsRowErrors(t *testing.T) {
	tournament := &models.Tournament{ID: 1, Name: "City Cup", HasCategories: true}
	hawks := &models.Team{ID: 10, TournamentID: 1, Name: "Hawks"}
	bulls := &models.Team{ID: 20, TournamentID: 1, Name: "Bulls"}

	// Строка 2: невозможная дата. Строка 3: одинаковые команды.
	// Строка 4: неизвестная команда. Все три пропускаются независимо.
	csvBody := strings.Join([]string{
		"date,time,venue,team_1_name,team_2_name",
		"13/40/2024,2:30 PM,Main Arena,Hawks,Bulls",
		"7/4/2025,2:30 PM,Main Arena,Hawks,Hawks",
		"7/4/2025,2:30 PM,Main Arena,Hawks,Wolves",
	}, "\n") + "\n"

	svc := NewScheduleImportService(
		nil,
		newFakeTournamentRepo(tournament),
		newFakeTeamRepo(hawks, bulls),
		newFakePlayerRepo(),
		newFakeScheduleRepo(),
		nil,
		discardLogger(),
	)

	result, err := svc.ImportFile(context.Background(), 1, "schedule.csv", strings.NewReader(csvBody))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	require.Len(t, result.RowErrors, 3)

	assert.Equal(t, 2, result.RowErrors[0].Line)
	assert.Contains(t, result.RowErrors[0].Error, "invalid date format")

	assert.Equal(t, 3, result.RowErrors[1].Line)
	assert.Contains(t, result.RowErrors[1].Error, "must be different")

	assert.Equal(t, 4, result.RowErrors[2].Line)
	assert.Contains(t, result.RowErrors[2].Error, `"Wolves"`)
}

func TestSeedStatsCoversBothRosters(t *testing.T) {
	team1 := make([]models.Player, 0, 5)
	for i := 1; i <= 5; i++ {
		team1 = append(team1, models.Player{ID: i, TeamID: 10})
	}
	team2 := make([]models.Player, 0, 7)
	for i := 6; i <= 12; i++ {
		team2 = append(team2, models.Player{ID: i, TeamID: 20})
	}

	stats := seedStats(55, team1, team2)
	require.Len(t, stats, 12)

	seen := make(map[int]bool, len(stats))
	for _, stat := range stats {
		assert.Equal(t, 55, stat.ScheduleID)
		assert.Zero(t, stat.Points)
		assert.Zero(t, stat.Minutes)
		assert.Zero(t, stat.Fouls)
		assert.Zero(t, stat.PlusMinus)
		seen[stat.PlayerID] = true
	}
	assert.Len(t, seen, 12, "every roster player gets exactly one line")
}

func TestSeedStatsEmptyRoster(t *testing.T) {
	stats := seedStats(55, nil, []models.Player{{ID: 1, TeamID: 20}})
	require.Len(t, stats, 1)
	assert.Equal(t, 20, stats[0].TeamID)
}

func TestImportFileMissingHeader(t *testing.T) {
	csvBody := "when,where\n7/4/2025,Main Arena\n"
	svc := NewScheduleImportService(nil, newFakeTournamentRepo(), newFakeTeamRepo(), newFakePlayerRepo(), newFakeScheduleRepo(), nil, discardLogger())

	_, err := svc.ImportFile(context.Background(), 1, "schedule.csv", strings.NewReader(csvBody))
	assert.ErrorIs(t, err, ErrImportMissingHeader)
}
