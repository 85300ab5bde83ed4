package config

import "time"

type Config interface {
	EnvConfig
	AccessConfig
	StoreConfig
	UploadConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetLogLevel() string
	GetEnv() string
}

// AccessConfig carries the static role allowlists consulted during role
// resolution. Both lists are comma-separated email addresses.
type AccessConfig interface {
	GetCouncilAdminEmails() []string
	GetSiteEditorEmails() []string
}

type StoreConfig interface {
	GetDBDriver() string // "sqlite" | "postgres"
	GetDBPath() string   // SQLite path
	GetDBUrl() string    // Postgres DSN
	GetRedisAddr() string
	GetDocCacheTTL() time.Duration
	GetTreasuryRulesPath() string
}

type UploadConfig interface {
	GetS3Endpoint() string
	GetS3AccessKey() string
	GetS3SecretKey() string
	GetS3Bucket() string
	GetS3UseSSL() bool
}

type mainConfig struct {
	EnvVars
	Access
	Store
	Upload
	Cors
}

func New() Config {
	return mainConfig{}
}
