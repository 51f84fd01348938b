package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort int

	// Флат-файловое хранилище базы киберспорта.
	DataFile   string
	BackupFile string

	// Дашборд (JWT).
	JWTSecretKey      string
	AdminPasswordHash string

	// Сервер клановых ролей (внешний, нужен только RosterProvider'у).
	// Пустой ROSTER_BASE_URL отключает обращения к мосту.
	ClanGuildID   string
	RosterBaseURL string

	// Cloudflare R2 — опционально, для снапшотов и архива загрузок.
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	SnapshotInterval time.Duration
	UploadWait       time.Duration
	Cooldown         time.Duration
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	cfg := &Config{
		DataFile:          getEnvOrDefault("DATA_FILE", "data/esports.json"),
		BackupFile:        getEnvOrDefault("BACKUP_FILE", "data/esports_backup.json"),
		JWTSecretKey:      os.Getenv("JWT_SECRET_KEY"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		ClanGuildID:       os.Getenv("CLAN_GUILD_ID"),
		RosterBaseURL:     os.Getenv("ROSTER_BASE_URL"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}
	if cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH environment variable is not set")
	}

	portStr := getEnvOrDefault("SERVER_PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}
	cfg.ServerPort = port

	cfg.SnapshotInterval, err = durationEnv("SNAPSHOT_INTERVAL", 6*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.UploadWait, err = durationEnv("UPLOAD_WAIT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Cooldown, err = durationEnv("COOLDOWN", 3*time.Second)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// SnapshotsEnabled reports whether the R2 credentials are complete enough to
// run off-site snapshots. Missing credentials just disable the feature.
func (c *Config) SnapshotsEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" &&
		c.R2SecretAccessKey != "" && c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}
