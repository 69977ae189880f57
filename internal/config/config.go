package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Logger      LoggerConfig
	DB          DBConfig
	Redis       RedisConfig
	JWT         JWTConfig
	LLM         LLMConfig
	Transcriber TranscriberConfig
	Downloader  DownloaderConfig
	RateLimit   RateLimitConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
	File  LogFileConfig
}

// LogFileConfig enables a rotating file sink in addition to stdout.
type LogFileConfig struct {
	Enabled    bool
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type DBConfig struct {
	Path string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type LLMConfig struct {
	APIKey string
	Model  string
}

// TranscriberConfig selects the speech-to-text backend.
// Source is either "whisper_cpp" (local binary) or "openai" (hosted API).
type TranscriberConfig struct {
	Source     string
	WhisperCpp WhisperCppConfig
	OpenAI     OpenAITranscriberConfig
}

type WhisperCppConfig struct {
	BinaryPath string
	ModelPath  string
	Language   string
}

type OpenAITranscriberConfig struct {
	APIKey string
	Model  string
}

type DownloaderConfig struct {
	BinaryPath string
	TempDir    string
	Timeout    time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../")
		viper.AddConfigPath("../../config")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("db.path", "quizly.db")
	viper.SetDefault("jwt.access_token_ttl", 15)
	viper.SetDefault("jwt.refresh_token_ttl", 10080)
	viper.SetDefault("llm.model", "gemini-2.0-flash")
	viper.SetDefault("transcriber.source", "whisper_cpp")
	viper.SetDefault("transcriber.whisper_cpp.binary_path", "whisper-cli")
	viper.SetDefault("transcriber.openai.model", "whisper-1")
	viper.SetDefault("downloader.binary_path", "yt-dlp")
	viper.SetDefault("downloader.timeout", 300)
	viper.SetDefault("ratelimit.rps", 1)
	viper.SetDefault("ratelimit.burst", 3)

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; env vars and defaults carry the rest.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
			File: LogFileConfig{
				Enabled:    viper.GetBool("logger.file.enabled"),
				Path:       viper.GetString("logger.file.path"),
				MaxSizeMB:  viper.GetInt("logger.file.max_size_mb"),
				MaxBackups: viper.GetInt("logger.file.max_backups"),
				MaxAgeDays: viper.GetInt("logger.file.max_age_days"),
			},
		},
		DB: DBConfig{
			Path: viper.GetString("db.path"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			SecretKey:       viper.GetString("jwt.secret_key"),
			AccessTokenTTL:  viper.GetDuration("jwt.access_token_ttl") * time.Minute,
			RefreshTokenTTL: viper.GetDuration("jwt.refresh_token_ttl") * time.Minute,
		},
		LLM: LLMConfig{
			APIKey: viper.GetString("llm.api_key"),
			Model:  viper.GetString("llm.model"),
		},
		Transcriber: TranscriberConfig{
			Source: viper.GetString("transcriber.source"),
			WhisperCpp: WhisperCppConfig{
				BinaryPath: viper.GetString("transcriber.whisper_cpp.binary_path"),
				ModelPath:  viper.GetString("transcriber.whisper_cpp.model_path"),
				Language:   viper.GetString("transcriber.whisper_cpp.language"),
			},
			OpenAI: OpenAITranscriberConfig{
				APIKey: viper.GetString("transcriber.openai.api_key"),
				Model:  viper.GetString("transcriber.openai.model"),
			},
		},
		Downloader: DownloaderConfig{
			BinaryPath: viper.GetString("downloader.binary_path"),
			TempDir:    viper.GetString("downloader.temp_dir"),
			Timeout:    viper.GetDuration("downloader.timeout") * time.Second,
		},
		RateLimit: RateLimitConfig{
			RPS:   viper.GetFloat64("ratelimit.rps"),
			Burst: viper.GetInt("ratelimit.burst"),
		},
	}

	// Environment variable overrides
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		config.DB.Path = dbPath
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.JWT.SecretKey = secret
	}
	if geminiKey := os.Getenv("GEMINI_API_KEY"); geminiKey != "" {
		config.LLM.APIKey = geminiKey
	}
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" {
		config.Transcriber.OpenAI.APIKey = openAIKey
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks startup-fatal settings. A missing LLM API key is a
// configuration error, not something to discover on the first request.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("missing GEMINI_API_KEY: the generative language API key must be set")
	}
	if c.JWT.SecretKey == "" {
		return fmt.Errorf("missing JWT_SECRET_KEY")
	}
	if len(c.JWT.SecretKey) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 bytes long")
	}
	switch c.Transcriber.Source {
	case "whisper_cpp":
		if c.Transcriber.WhisperCpp.ModelPath == "" {
			return fmt.Errorf("transcriber.whisper_cpp.model_path is required when source is whisper_cpp")
		}
	case "openai":
		if c.Transcriber.OpenAI.APIKey == "" {
			return fmt.Errorf("transcriber.openai.api_key is required when source is openai")
		}
	default:
		return fmt.Errorf("unsupported transcriber source: %s", c.Transcriber.Source)
	}
	return nil
}
