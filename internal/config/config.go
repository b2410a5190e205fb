package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel     string       `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	LogFile      string       `yaml:"log-file" env:"TICTACTOE_LOG_FILE" env-default:"tictactoe.log"`
	SessionStore SessionStore `yaml:"session-store"`
	Theme        Theme        `yaml:"theme"`
}

type SessionStore struct {
	Enabled bool          `yaml:"enabled" env:"TICTACTOE_STORE_ENABLED" env-default:"false"`
	Host    string        `yaml:"host" env:"TICTACTOE_STORE_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"TICTACTOE_STORE_PORT" env-default:"6379"`
	Key     string        `yaml:"key" env:"TICTACTOE_STORE_KEY" env-default:"default"`
	Timeout time.Duration `yaml:"timeout" env-default:"2s"`
}

type Theme struct {
	XColor    string `yaml:"x-color" env-default:"#22d3ee"`
	OColor    string `yaml:"o-color" env-default:"#34d399"`
	LineColor string `yaml:"line-color" env-default:"#facc15"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// Default - configuration built from defaults and environment only, for runs without a config file.
func Default() (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	return config, nil
}

func (that *SessionStore) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
