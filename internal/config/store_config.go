package config

import (
	"strconv"
	"time"
)

type Store struct{}

var _ StoreConfig = Store{}

func (Store) GetDBDriver() string {
	return GetEnv("DB_DRIVER", "sqlite")
}

func (Store) GetDBPath() string {
	return GetEnv("DB_PATH", "./data/portal.db")
}

func (Store) GetDBUrl() string {
	return GetEnv("DATABASE_URL", "")
}

func (Store) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "")
}

// GetDocCacheTTL returns how long cached documents stay fresh. Roster and
// override reads tolerate short staleness; the default keeps it well under a
// typical operator edit-and-check cycle.
func (Store) GetDocCacheTTL() time.Duration {
	seconds, err := strconv.Atoi(GetEnv("DOC_CACHE_TTL_SECONDS", "30"))
	if err != nil || seconds < 0 {
		seconds = 30
	}
	return time.Duration(seconds) * time.Second
}

func (Store) GetTreasuryRulesPath() string {
	return GetEnv("TREASURY_RULES", "")
}
