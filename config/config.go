package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const defaultRecaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

type Config struct {
	Server    Server
	Database  Database
	Auth      Auth
	Recaptcha Recaptcha
	RateLimit RateLimit
	Log       Log
}

type Server struct {
	Port    string
	GinMode string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// Recaptcha configures the anti-abuse gate. With an empty Secret the gate
// rejects every vote unless Disabled is set explicitly.
type Recaptcha struct {
	Secret    string
	VerifyURL string
	Timeout   time.Duration
	MinScore  float64
	Disabled  bool
}

// Log is applied to the global zerolog logger once config is loaded.
type Log struct {
	Level  string
	Format string
}

// RateLimit is only active when RedisURL is set.
type RateLimit struct {
	RedisURL string
	Limit    int
	Window   time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("JWT_TTL", "24h")
	viper.SetDefault("RECAPTCHA_VERIFY_URL", defaultRecaptchaVerifyURL)
	viper.SetDefault("RECAPTCHA_TIMEOUT", "5s")
	viper.SetDefault("RECAPTCHA_MIN_SCORE", 0.5)
	viper.SetDefault("VOTE_RATE_LIMIT", 20)
	viper.SetDefault("VOTE_RATE_WINDOW", "1m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.TokenTTL = viper.GetDuration("JWT_TTL")

	config.Recaptcha.Secret = viper.GetString("RECAPTCHA_SECRET")
	config.Recaptcha.VerifyURL = viper.GetString("RECAPTCHA_VERIFY_URL")
	config.Recaptcha.Timeout = viper.GetDuration("RECAPTCHA_TIMEOUT")
	config.Recaptcha.MinScore = viper.GetFloat64("RECAPTCHA_MIN_SCORE")
	config.Recaptcha.Disabled = viper.GetBool("RECAPTCHA_DISABLED")

	config.RateLimit.RedisURL = viper.GetString("REDIS_URL")
	config.RateLimit.Limit = viper.GetInt("VOTE_RATE_LIMIT")
	config.RateLimit.Window = viper.GetDuration("VOTE_RATE_WINDOW")

	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.Format = viper.GetString("LOG_FORMAT")

	if config.Auth.JWTSecret == "" {
		log.Error().Msg("JWT_SECRET is not set. Owner authentication will refuse to start.")
	}

	log.Info().
		Str("port", config.Server.Port).
		Str("db_host", config.Database.Host).
		Str("db_name", config.Database.Name).
		Bool("recaptcha_disabled", config.Recaptcha.Disabled).
		Bool("rate_limit", config.RateLimit.RedisURL != "").
		Msg("Config loaded")
	return &config, nil
}

// DSN builds the postgres connection string for gorm.
func (d Database) DSN() string {
	return "host=" + d.Host +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" port=" + d.Port +
		" sslmode=" + d.SSLMode
}
