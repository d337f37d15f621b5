// Package config handles environment settings and source spec files.
package config

import (
	"os"
)

// Config holds settings loaded from environment variables (populated from a
// .env file by main, when one exists).
type Config struct {
	MongoConnString string
	StateDir        string
}

// LoadConfig reads the environment. MONGO_CONNECTION_STRING may legitimately
// be empty when the source spec carries its own connection_url; the handler
// decides which one wins.
func LoadConfig() *Config {
	return &Config{
		MongoConnString: os.Getenv("MONGO_CONNECTION_STRING"),
		StateDir:        os.Getenv("MONGOTAP_STATE_DIR"),
	}
}
