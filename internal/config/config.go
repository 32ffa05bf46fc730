package config

import (
	"os"
	"strings"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPath        string
	JWTSecret     string
	SessionSecret string
	SessionStore  string
	ServerPort    string
	AdminUsername string
	AdminPassword string
	CORSOrigins   []string
}

func Load() *Config {
	return &Config{
		DBDriver:      getEnv("DB_DRIVER", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "quiz"),
		DBPath:        getEnv("DB_PATH", "quiz.sqlite"),
		JWTSecret:     getEnv("JWT_SECRET", "super-secret-key-change-me"),
		SessionSecret: getEnv("SESSION_SECRET", "session-secret-change-me"),
		SessionStore:  getEnv("SESSION_STORE", "memory"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "1234567"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
