package config

import "os"

type Config struct {
	Port      string
	Driver    string
	DSN       string
	DataDir   string
	ReloadInt string
}

// FromEnv builds a Config from environment variables, with sane defaults.
func FromEnv() Config {
	cfg := Config{
		Port:      os.Getenv("PORT"),
		Driver:    os.Getenv("FREIGHTQUOTE_DATA_DRIVER"),
		DSN:       os.Getenv("FREIGHTQUOTE_DATA_DSN"),
		DataDir:   os.Getenv("FREIGHTQUOTE_DATA_DIR"),
		ReloadInt: os.Getenv("FREIGHTQUOTE_RELOAD_INTERVAL"),
	}
	if cfg.Port == "" {
		cfg.Port = "8000"
	}
	if cfg.Driver == "" {
		cfg.Driver = "csv"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	return cfg
}
