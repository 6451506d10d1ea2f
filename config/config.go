package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Upload   Upload
	Env      string
}

type Server struct {
	Port string
}

type Database struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	MaxOpenConns int
	MaxIdleConns int
}

type Auth struct {
	JWTSecret     string
	UserTokenTTL  time.Duration
	AdminTokenTTL time.Duration
}

type Upload struct {
	Dir     string
	BaseURL string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "4000")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 100)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 10)
	viper.SetDefault("JWT_USER_TTL_HOURS", 168)
	viper.SetDefault("JWT_ADMIN_TTL_HOURS", 24)
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("APP_ENV", "development")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.MaxOpenConns = viper.GetInt("DATABASE_MAX_OPEN_CONNS")
	config.Database.MaxIdleConns = viper.GetInt("DATABASE_MAX_IDLE_CONNS")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.UserTokenTTL = time.Duration(viper.GetInt("JWT_USER_TTL_HOURS")) * time.Hour
	config.Auth.AdminTokenTTL = time.Duration(viper.GetInt("JWT_ADMIN_TTL_HOURS")) * time.Hour

	config.Upload.Dir = viper.GetString("UPLOAD_DIR")
	config.Upload.BaseURL = viper.GetString("UPLOAD_BASE_URL")

	config.Env = viper.GetString("APP_ENV")

	log.Info().Str("env", config.Env).Str("port", config.Server.Port).Msg("Config loaded")
	return &config, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
