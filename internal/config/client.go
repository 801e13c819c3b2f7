package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Client configures the todo CLI. Values come from an optional YAML file
// (TODO_CONFIG) and are overridden by the environment.
type Client struct {
	APIURL    string        `yaml:"api_url" env:"TODO_API_URL" env-default:"http://localhost:8082/api"`
	TokenFile string        `yaml:"token_file" env:"TODO_TOKEN_FILE"`
	LogLevel  string        `yaml:"log_level" env:"TODO_LOG_LEVEL" env-default:"warn"`
	Timeout   time.Duration `yaml:"timeout" env:"TODO_TIMEOUT" env-default:"10s"`
}

func LoadClient() (*Client, error) {
	var cfg Client

	var err error
	if path := os.Getenv("TODO_CONFIG"); path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, err
	}

	if cfg.TokenFile == "" {
		cfg.TokenFile = defaultTokenFile()
	}
	return &cfg, nil
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "todoapp", "auth_token")
}
