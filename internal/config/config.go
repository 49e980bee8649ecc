package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DB     DBConfig
	Server ServerConfig
	Redis  RedisConfig
	LLM    LLMConfig
	Auth   AuthConfig
	Logger LoggerConfig
	Quiz   QuizConfig
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DBConfig struct {
	Driver   string // "oracle" (go-ora) or "godror"
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LLMConfig configures the external grader and question generator.
type LLMConfig struct {
	Provider         string // "ollama" or "openai"
	Server           string
	Model            string
	OpenAIAPIKey     string
	GraderTimeout    time.Duration
	GeneratorTimeout time.Duration
}

type AuthConfig struct {
	JWTSecret string
}

type LoggerConfig struct {
	Level string
	Env   string
}

// QuizConfig holds the tunables of the quiz engine host.
type QuizConfig struct {
	LockTTL       time.Duration
	StatsCacheTTL time.Duration
	AbandonAfter  time.Duration
}

func setDefaults() {
	viper.SetDefault("db.driver", "oracle")
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("llm.provider", "ollama")
	viper.SetDefault("llm.model", "qwen3:0.6b")
	viper.SetDefault("llm.grader_timeout", 20)
	viper.SetDefault("llm.generator_timeout", 60)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("quiz.lock_ttl", 30)
	viper.SetDefault("quiz.stats_cache_ttl", 300)
	viper.SetDefault("quiz.abandon_after", 24*60*60)
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	setDefaults()
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		DB: DBConfig{
			Driver:   viper.GetString("db.driver"),
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
		},
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		LLM: LLMConfig{
			Provider:         viper.GetString("llm.provider"),
			Server:           viper.GetString("llm.server"),
			Model:            viper.GetString("llm.model"),
			OpenAIAPIKey:     viper.GetString("openai_api_key"),
			GraderTimeout:    viper.GetDuration("llm.grader_timeout") * time.Second,
			GeneratorTimeout: viper.GetDuration("llm.generator_timeout") * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("auth.jwt_secret"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Quiz: QuizConfig{
			LockTTL:       viper.GetDuration("quiz.lock_ttl") * time.Second,
			StatsCacheTTL: viper.GetDuration("quiz.stats_cache_ttl") * time.Second,
			AbandonAfter:  viper.GetDuration("quiz.abandon_after") * time.Second,
		},
	}

	// Override with environment variables if set
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if llmServer := os.Getenv("LLM_SERVER"); llmServer != "" {
		config.LLM.Server = llmServer
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" {
		config.LLM.OpenAIAPIKey = openAIKey
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if env := os.Getenv("ENV"); env != "" && config.Logger.Env == "" {
		config.Logger.Env = env
	}

	return config, nil
}

func (c *Config) GetDSN() string {
	if c.DB.Driver == "godror" {
		return fmt.Sprintf(`user="%s" password="%s" connectString="%s:%d/%s"`,
			c.DB.User,
			c.DB.Password,
			c.DB.Host,
			c.DB.Port,
			c.DB.DBName,
		)
	}
	// Oracle DSN format: user/password@host:port/service
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}
