package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге ответов.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки авторизации взаимодействий
	ErrForeignSession = errors.New("interaction belongs to another user")
	ErrAdminOnly      = errors.New("operation allowed for admins only")
	ErrCooldown       = errors.New("principal is on cooldown")

	// Ошибки, специфичные для сущностей
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrClanNotFound       = errors.New("clan not found in the database")

	// Ошибки загрузки таблиц
	ErrNoUploadSession   = errors.New("no open upload session for this user")
	ErrNoValidFiles      = errors.New("no valid spreadsheet files attached")
	ErrUploadSessionOpen = errors.New("an upload session is already open")

	// Ошибки дашборда
	ErrInvalidCredentials = errors.New("invalid password")
)
