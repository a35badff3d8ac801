package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed        = errors.New("validation failed")
	ErrTournamentNameRequired  = errors.New("tournament name is required")
	ErrTeamNameRequired        = errors.New("team name is required")
	ErrPlayerNameRequired      = errors.New("player first and last name are required")
	ErrTeamNotInTournament     = errors.New("team does not belong to the tournament")
	ErrScheduleTeamsIdentical  = errors.New("a schedule requires two distinct teams")
	ErrQuarterOutOfRange       = errors.New("quarter must be a positive number")
	ErrStatTypeRequired        = errors.New("type_of_stat is required")

	// Ошибки форматирования ленты игры
	ErrPlayerNameEmpty = errors.New("player has empty name fields")

	// Ошибки импорта расписания (построчные)
	ErrImportDateRequired     = errors.New("date is required")
	ErrImportInvalidDate      = errors.New("invalid date format")
	ErrImportTimeRequired     = errors.New("time is required")
	ErrImportInvalidTime      = errors.New("invalid time format")
	ErrImportVenueRequired    = errors.New("venue is required")
	ErrImportVenueTooLong     = errors.New("venue exceeds 255 characters")
	ErrImportTeamNameRequired = errors.New("both team names are required")
	ErrImportTeamNameTooLong  = errors.New("team name exceeds 255 characters")
	ErrImportTeamNamesEqual   = errors.New("team_1_name and team_2_name must be different")
	ErrImportTeamNotFound     = errors.New("team not found in the tournament")
	ErrImportMissingHeader    = errors.New("spreadsheet is missing required header columns")
	ErrImportUnsupportedFile  = errors.New("unsupported spreadsheet format")

	// Ошибки конфликтов
	ErrUserEmailConflict      = errors.New("email address is already in use")
	ErrTeamNameConflict       = errors.New("team name is already in use in this tournament")
	ErrTournamentNameConflict = errors.New("tournament name already exists")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrScheduleNotFound   = errors.New("schedule not found")
)
