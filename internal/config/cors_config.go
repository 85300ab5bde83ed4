package config

import "strings"

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type AllowedOrigins []string

func (ao AllowedOrigins) IsAllowedOrigin(origin string) bool {
	for _, allowed := range ao {
		if strings.EqualFold(strings.TrimSpace(allowed), origin) {
			return true
		}
	}
	return false
}

type Cors struct{}

var _ CorsConfig = Cors{}

func (Cors) GetAllowedOrigins() AllowedOrigins {
	origins := GetEnv("CORS_ALLOWED_ORIGINS", "")
	if origins == "" {
		return nil
	}
	return AllowedOrigins(strings.Split(origins, ","))
}

func (Cors) GetAllowedMethods() string {
	return GetEnv("CORS_ALLOWED_METHODS", "GET, POST, PUT, DELETE, OPTIONS")
}

func (Cors) GetAllowedHeaders() string {
	return GetEnv("CORS_ALLOWED_HEADERS", "Content-Type, Authorization, Cookie")
}
