package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	Redis  RedisConfig
	Logger LoggerConfig
	Quiz   QuizConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LLMConfig selects and configures the upstream model provider.
// Provider is either "googleai" (Gemini, the default) or "ollama".
type LLMConfig struct {
	Provider  string
	Model     string
	APIKey    string
	ServerURL string // ollama only
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	QuizTTL  time.Duration
}

type LoggerConfig struct {
	Env   string
	Level string
}

type QuizConfig struct {
	DefaultQuestionCount int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("llm.provider", "googleai")
	viper.SetDefault("llm.model", "gemini-2.5-flash")
	viper.SetDefault("llm.server", "http://localhost:11434")
	viper.SetDefault("redis.quiz_ttl", 3600)
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("quiz.default_question_count", 5)

	viper.AutomaticEnv()

	// The config file is optional; env vars and defaults are enough to run.
	if err := viper.ReadInConfig(); err != nil {
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
		LLM: LLMConfig{
			Provider:  viper.GetString("llm.provider"),
			Model:     viper.GetString("llm.model"),
			APIKey:    viper.GetString("llm.api_key"),
			ServerURL: viper.GetString("llm.server"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			QuizTTL:  viper.GetDuration("redis.quiz_ttl") * time.Second,
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
		},
		Quiz: QuizConfig{
			DefaultQuestionCount: viper.GetInt("quiz.default_question_count"),
		},
	}

	// Override with environment variables if set
	if port := os.Getenv("PORT"); port != "" {
		viper.Set("server.port", port)
		config.Server.Port = viper.GetInt("server.port")
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		viper.Set("server.port", port)
		config.Server.Port = viper.GetInt("server.port")
	}
	// The Gemini credential is read but deliberately not validated here;
	// a missing key surfaces when the first upstream call is attempted.
	if apiKey := os.Getenv("GOOGLE_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = provider
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}
	if llmServer := os.Getenv("LLM_SERVER"); llmServer != "" {
		config.LLM.ServerURL = llmServer
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}

	return config, nil
}
