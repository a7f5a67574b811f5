// Package config loads and exposes the application configuration.
// Configuration lives in TOML files resolved from a short list of candidate
// paths, local overrides first.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// MainConfig holds the basic application identity and listen address.
type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
}

// MysqlConfig holds MySQL connection settings.
type MysqlConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"`
	Db       int    `toml:"db"`
}

// LogConfig configures the rotating zap logger.
type LogConfig struct {
	LogPath    string `toml:"logPath"`
	FileName   string `toml:"fileName"`
	MaxSize    int    `toml:"maxSize"`    // MB per file
	MaxBackups int    `toml:"maxBackups"` // rotated files kept
	MaxAge     int    `toml:"maxAge"`     // days kept
	Level      string `toml:"level"`      // debug, info, warn, error
}

// JWTConfig configures token signing.
type JWTConfig struct {
	Secret             string `toml:"secret"`
	AccessTokenExpiry  int    `toml:"accessTokenExpiry"`  // minutes
	RefreshTokenExpiry int    `toml:"refreshTokenExpiry"` // hours
}

// KafkaConfig selects the event transport for the push gateway.
// messageMode is "channel" (in-process, default) or "kafka".
type KafkaConfig struct {
	MessageMode string        `toml:"messageMode"`
	HostPort    string        `toml:"hostPort"`
	EventTopic  string        `toml:"eventTopic"`
	Partition   int           `toml:"partition"`
	Timeout     time.Duration `toml:"timeout"`
}

// OpenAIConfig configures the summary/transcription provider.
type OpenAIConfig struct {
	ApiKey             string `toml:"apiKey"`
	SummaryModel       string `toml:"summaryModel"`
	TranscriptionModel string `toml:"transcriptionModel"`
}

// SmsConfig configures the appointment reminder sender (Aliyun SMS).
// Leaving the access keys empty switches the sender to a local mock.
type SmsConfig struct {
	AccessKeyID     string `toml:"accessKeyID"`
	AccessKeySecret string `toml:"accessKeySecret"`
	SignName        string `toml:"signName"`
	TemplateCode    string `toml:"templateCode"`
}

// StaticSrcConfig holds paths for files this server writes to local disk.
type StaticSrcConfig struct {
	TranscriptPath string `toml:"transcriptPath"` // per-room transcript files
	RecordingPath  string `toml:"recordingPath"`  // downloaded recordings
}

// SnowflakeConfig configures message id generation.
type SnowflakeConfig struct {
	MachineID int64 `toml:"machineId"` // 0-1023, unique per instance
}

// Config aggregates all sub-configurations.
type Config struct {
	MainConfig      `toml:"mainConfig"`
	MysqlConfig     `toml:"mysqlConfig"`
	RedisConfig     `toml:"redisConfig"`
	LogConfig       `toml:"logConfig"`
	JWTConfig       `toml:"jwtConfig"`
	KafkaConfig     `toml:"kafkaConfig"`
	OpenAIConfig    `toml:"openaiConfig"`
	SmsConfig       `toml:"smsConfig"`
	StaticSrcConfig `toml:"staticSrcConfig"`
	SnowflakeConfig `toml:"snowflakeConfig"`
}

// lazily loaded singleton
var config *Config

// LoadConfig tries the candidate paths in order and stops at the first file
// that parses.
func LoadConfig() error {
	if config == nil {
		config = new(Config)
	}
	paths := []string{
		"configs/config_local.toml",
		"configs/config.toml",
		"../../configs/config_local.toml",
		"../../configs/config.toml",
	}

	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			return nil
		}
	}

	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// GetConfig returns the global configuration, loading it on first use.
func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig() // fall back to zero values when no file is present
	}
	return config
}
