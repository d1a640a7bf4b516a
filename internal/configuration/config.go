package configuration

import (
	"devicehub/internal/logger"
	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/pkg/errors"
	"os"
	"time"
)

const envPrefix = "DEVICEHUB_"

type Config struct {
	ServerAddress string
	DatabaseURI   string
	DatabaseName  string
	LogLevel      logger.Level
	LogToFile     bool
	AuthSecretKey jwk.Key `json:"-"`
	TokenTTL      time.Duration
	RedisAddress  string
	RedisPassword string `json:"-"`
	LockTTL       time.Duration
}

type tomlConfig struct {
	ServerAddress string `toml:"server_address"`
	DatabaseURI   string `toml:"database_uri"`
	DatabaseName  string `toml:"database_name"`
	LogLevel      string `toml:"log_level"`
	LogToFile     bool   `toml:"log_to_file"`
	AuthSecretKey string `toml:"auth_secret_key"`
	TokenTTL      string `toml:"token_ttl"`
	RedisAddress  string `toml:"redis_address"`
	RedisPassword string `toml:"redis_password"`
	LockTTL       string `toml:"lock_ttl"`
}

// GetConfig reads the TOML file at path. A missing file is not an error as
// long as the environment supplies the required values. Variables from a
// .env file in the working directory and DEVICEHUB_* variables override the
// file.
func GetConfig(path string) (*Config, error) {
	var tc tomlConfig
	if _, err := toml.DecodeFile(path, &tc); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(err, "failed to decode toml file with path: %s", path)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "failed to load .env file")
	}
	overrideFromEnv(&tc)

	if tc.ServerAddress == "" {
		tc.ServerAddress = "localhost:5000"
	}

	if tc.DatabaseURI == "" {
		tc.DatabaseURI = "mongodb://localhost:27017"
	}

	if tc.DatabaseName == "" {
		tc.DatabaseName = "devicehub"
	}

	if tc.LogLevel == "" {
		tc.LogLevel = "INFO"
	}
	logLevel, err := logger.ParseLevel(tc.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse log_level")
	}

	if tc.TokenTTL == "" {
		tc.TokenTTL = "100h"
	}
	tokenTTL, err := time.ParseDuration(tc.TokenTTL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse token_ttl: %s", tc.TokenTTL)
	}
	if tokenTTL < time.Minute {
		return nil, errors.Errorf("token_ttl too short (%v), minimum: 1m", tokenTTL)
	}

	if tc.LockTTL == "" {
		tc.LockTTL = "5s"
	}
	lockTTL, err := time.ParseDuration(tc.LockTTL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse lock_ttl: %s", tc.LockTTL)
	}
	if lockTTL <= 0 {
		return nil, errors.Errorf("lock_ttl must be positive, got %v", lockTTL)
	}

	if tc.AuthSecretKey == "" {
		return nil, errors.New("auth_secret_key is not set")
	}

	authSecretKey, err := jwk.FromRaw([]byte(tc.AuthSecretKey))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create key from auth_secret_key")
	}

	return &Config{
		ServerAddress: tc.ServerAddress,
		DatabaseURI:   tc.DatabaseURI,
		DatabaseName:  tc.DatabaseName,
		LogLevel:      logLevel,
		LogToFile:     tc.LogToFile,
		AuthSecretKey: authSecretKey,
		TokenTTL:      tokenTTL,
		RedisAddress:  tc.RedisAddress,
		RedisPassword: tc.RedisPassword,
		LockTTL:       lockTTL,
	}, nil
}

func overrideFromEnv(tc *tomlConfig) {
	overrides := map[string]*string{
		"SERVER_ADDRESS":  &tc.ServerAddress,
		"DATABASE_URI":    &tc.DatabaseURI,
		"DATABASE_NAME":   &tc.DatabaseName,
		"LOG_LEVEL":       &tc.LogLevel,
		"AUTH_SECRET_KEY": &tc.AuthSecretKey,
		"TOKEN_TTL":       &tc.TokenTTL,
		"REDIS_ADDRESS":   &tc.RedisAddress,
		"REDIS_PASSWORD":  &tc.RedisPassword,
		"LOCK_TTL":        &tc.LockTTL,
	}
	for name, dst := range overrides {
		if v, ok := os.LookupEnv(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
}
