package config

import (
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
)

// Config is an application configuration struct.
type Config struct {
	Server   *Server   `json:"server"`
	Mongo    *Mongo    `json:"mongo"`
	Firebase *Firebase `json:"firebase"`
	Sentry   string    `json:"sentry"`
}

// Server stores the HTTP listener configuration. Origins is the CORS
// allowlist; empty means every origin is accepted.
type Server struct {
	Port    string   `json:"port"`
	Origins []string `json:"origins"`
}

// Mongo stores Mongo connection configuration. Required unless the
// in-memory store is selected.
type Mongo struct {
	URI      string `json:"uri"`
	Database string `json:"default_db"`
}

// Firebase identifies the project whose ID tokens are accepted. Empty
// disables token verification entirely, which also disables every
// identity-gated endpoint.
type Firebase struct {
	ProjectID string `json:"project_id"`
}

func FromFile(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	err = json.Unmarshal(file, &cfg)
	if err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return &cfg, nil
}

// LoadDotEnv loads a local .env file if one exists. Missing files are
// fine; the process environment still applies.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// applyEnv lets deployment environments override file values without
// editing the config file. Secrets usually arrive this way.
func (c *Config) applyEnv() {
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Mongo == nil {
		c.Mongo = &Mongo{}
	}
	if c.Firebase == nil {
		c.Firebase = &Firebase{}
	}

	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("MONGO_DB"); v != "" {
		c.Mongo.Database = v
	}
	if v := os.Getenv("FIREBASE_PROJECT_ID"); v != "" {
		c.Firebase.ProjectID = v
	}
	if v := os.Getenv("SENTRY_DSN"); v != "" {
		c.Sentry = v
	}

	if c.Server.Port == "" {
		c.Server.Port = "3000"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "artopia_db"
	}
}
