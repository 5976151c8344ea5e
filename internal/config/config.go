package config

import (
	"os"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	LogLevel        string
	ProjectID       string
	SheetID         string
	SheetIDSecret   string
	SheetURL        string
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
	Location        *time.Location
}

// New reads the environment. A .env file in the working directory is
// loaded first when present; real environment variables win.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        os.Getenv("LOGLEVEL"),
		ProjectID:       os.Getenv("PROJECTID"),
		SheetID:         os.Getenv("SHEETID"),
		SheetIDSecret:   os.Getenv("SHEETIDSECRET"),
		SheetURL:        os.Getenv("SHEETURL"),
		RefreshInterval: getDuration("REFRESHINTERVAL", 5*time.Minute),
		FetchTimeout:    getDuration("FETCHTIMEOUT", 15*time.Second),
		Location:        getLocation(os.Getenv("TIMEZONE")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
