package services

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gasesray/shottrack/models"
	"github.com/gasesray/shottrack/repositories"
	"github.com/xuri/excelize/v2"
)

// Колонки заголовка, которые обязан содержать импортируемый файл.
var requiredImportColumns = []string{"date", "time", "venue", "team_1_name", "team_2_name"}

// scheduleRow — одна строка таблицы после разбора файла, до валидации.
type scheduleRow struct {
	Line       int // номер строки в файле, для сообщений об ошибках
	Date       string
	Time       string
	Venue      string
	Team1Name  string
	Team2Name  string
	Category   string
	Team1Color string
	Team2Color string
}

// ImportRowError — ошибка обработки одной строки. Строка пропускается,
// импорт остальных продолжается.
type ImportRowError struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

type ImportResult struct {
	Created   int              `json:"created"`
	RowErrors []ImportRowError `json:"row_errors,omitempty"`
}

type ScheduleImportService interface {
	// ImportFile разбирает .xlsx или .csv файл с расписанием и создаёт
	// матчи турнира вместе с обнулённой статистикой игроков.
	ImportFile(ctx context.Context, tournamentID int, filename string, reader io.Reader) (*ImportResult, error)
}

type scheduleImportService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	playerRepo     repositories.PlayerRepository
	scheduleRepo   repositories.ScheduleRepository
	playerStatRepo repositories.PlayerStatRepository
	logger         *slog.Logger
}

func NewScheduleImportService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	scheduleRepo repositories.ScheduleRepository,
	playerStatRepo repositories.PlayerStatRepository,
	logger *slog.Logger,
) ScheduleImportService {
	return &scheduleImportService{
		db:             db,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		scheduleRepo:   scheduleRepo,
		playerStatRepo: playerStatRepo,
		logger:         logger,
	}
}

func (s *scheduleImportService) ImportFile(ctx context.Context, tournamentID int, filename string, reader io.Reader) (*ImportResult, error) {
	var (
		rows []scheduleRow
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = parseXLSX(reader)
	case ".csv":
		rows, err = parseCSV(reader)
	default:
		return nil, fmt.Errorf("%w: %s", ErrImportUnsupportedFile, filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	// Турнир фиксирован для всего задания импорта, резолвим один раз.
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrTournamentNotFound, tournamentID)
		}
		return nil, err
	}

	result := &ImportResult{}
	for _, row := range rows {
		if _, rowErr := s.importRow(ctx, tournament, row); rowErr != nil {
			s.logger.Warn("schedule import row failed",
				slog.Int("tournament_id", tournamentID),
				slog.Int("line", row.Line),
				slog.Any("error", rowErr))
			result.RowErrors = append(result.RowErrors, ImportRowError{Line: row.Line, Error: rowErr.Error()})
			continue
		}
		result.Created++
	}

	s.logger.Info("schedule import finished",
		slog.Int("tournament_id", tournamentID),
		slog.Int("created", result.Created),
		slog.Int("failed", len(result.RowErrors)))
	return result, nil
}

// importRow валидирует строку, резолвит команды, нормализует дату/время и
// создаёт матч с посевом статистики. Любая ошибка касается только этой строки.
func (s *scheduleImportService) importRow(ctx context.Context, tournament *models.Tournament, row scheduleRow) (*models.Schedule, error) {
	if err := validateRow(row); err != nil {
		return nil, err
	}

	team1, err := s.resolveTeam(ctx, row.Team1Name, tournament.ID)
	if err != nil {
		return nil, err
	}
	team2, err := s.resolveTeam(ctx, row.Team2Name, tournament.ID)
	if err != nil {
		return nil, err
	}

	matchDate, err := parseImportDate(row.Date)
	if err != nil {
		return nil, err
	}
	matchTime, err := parseImportTime(row.Time)
	if err != nil {
		return nil, err
	}

	schedule := &models.Schedule{
		TournamentID: tournament.ID,
		Date:         matchDate,
		Time:         matchTime,
		Venue:        row.Venue,
		Team1ID:      team1.ID,
		Team1Color:   optionalString(row.Team1Color),
		Team2ID:      team2.ID,
		Team2Color:   optionalString(row.Team2Color),
	}
	// Категория попадает в матч только если турнир ведёт категории.
	if tournament.HasCategories {
		schedule.Category = optionalString(row.Category)
	}

	if err := createScheduleWithStats(ctx, s.db, s.scheduleRepo, s.playerStatRepo, s.playerRepo, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleImportService) resolveTeam(ctx context.Context, name string, tournamentID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByNameAndTournament(ctx, name, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, fmt.Errorf("%w: team %q, tournament id %d", ErrImportTeamNotFound, name, tournamentID)
		}
		return nil, err
	}
	return team, nil
}

func validateRow(row scheduleRow) error {
	if row.Date == "" {
		return ErrImportDateRequired
	}
	if row.Time == "" {
		return ErrImportTimeRequired
	}
	if row.Venue == "" {
		return ErrImportVenueRequired
	}
	if len(row.Venue) > 255 {
		return fmt.Errorf("%w: %q", ErrImportVenueTooLong, row.Venue[:32]+"...")
	}
	if row.Team1Name == "" || row.Team2Name == "" {
		return ErrImportTeamNameRequired
	}
	if len(row.Team1Name) > 255 || len(row.Team2Name) > 255 {
		return ErrImportTeamNameTooLong
	}
	if row.Team1Name == row.Team2Name {
		return fmt.Errorf("%w: %q", ErrImportTeamNamesEqual, row.Team1Name)
	}
	return nil
}

// parseImportDate переводит дату из m/d/Y в ISO (Y-m-d).
func parseImportDate(raw string) (string, error) {
	parsed, err := time.Parse("1/2/2006", strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w for %q, expected format m/d/Y", ErrImportInvalidDate, raw)
	}
	return parsed.Format("2006-01-02"), nil
}

// parseImportTime переводит 12-часовое время ("h:mm AM/PM") в HH:MM:SS.
func parseImportTime(raw string) (string, error) {
	parsed, err := time.Parse("3:04 PM", strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w for %q, expected 12-hour format (e.g., 12:00 PM)", ErrImportInvalidTime, raw)
	}
	return parsed.Format("15:04:05"), nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// --- Разбор файлов ---

func parseXLSX(reader io.Reader) ([]scheduleRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportUnsupportedFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrImportUnsupportedFile)
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rowsFromRecords(records)
}

func parseCSV(reader io.Reader) ([]scheduleRow, error) {
	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1 // строки могут опускать хвостовые пустые колонки
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportUnsupportedFile, err)
	}
	return rowsFromRecords(records)
}

// rowsFromRecords сопоставляет колонки по строке заголовка и собирает строки
// расписания. Полностью пустые строки пропускаются.
func rowsFromRecords(records [][]string) ([]scheduleRow, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrImportMissingHeader)
	}

	index := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredImportColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrImportMissingHeader, col)
		}
	}

	cell := func(record []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make([]scheduleRow, 0, len(records)-1)
	for n, record := range records[1:] {
		row := scheduleRow{
			Line:       n + 2, // +1 за заголовок, +1 за нумерацию с единицы
			Date:       cell(record, "date"),
			Time:       cell(record, "time"),
			Venue:      cell(record, "venue"),
			Team1Name:  cell(record, "team_1_name"),
			Team2Name:  cell(record, "team_2_name"),
			Category:   cell(record, "category"),
			Team1Color: cell(record, "team_1_color"),
			Team2Color: cell(record, "team_2_color"),
		}
		if row == (scheduleRow{Line: row.Line}) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
