package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Redis    Redis
	SMTP     SMTP
	JWT      JWT
	Jobs     Jobs
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type JWT struct {
	Secret      string
	ExpiryHours int
}

type Jobs struct {
	// Cron expressions, evaluated in UTC.
	ExpirySweepSchedule   string
	ExpiryWarningSchedule string
	DailyReminderSchedule string
	MonthlyReportSchedule string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_CACHE_DB", 1)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("EXPIRY_SWEEP_SCHEDULE", "*/2 * * * *")
	viper.SetDefault("EXPIRY_WARNING_SCHEDULE", "*/5 * * * *")
	viper.SetDefault("DAILY_REMINDER_SCHEDULE", "0 18 * * *")
	viper.SetDefault("MONTHLY_REPORT_SCHEDULE", "0 2 1 * *")

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_CACHE_DB")

	config.SMTP.Host = viper.GetString("SMTP_HOST")
	config.SMTP.Port = viper.GetInt("SMTP_PORT")
	config.SMTP.Username = viper.GetString("SMTP_USERNAME")
	config.SMTP.Password = viper.GetString("SMTP_PASSWORD")
	config.SMTP.From = viper.GetString("SMTP_FROM")

	config.JWT.Secret = viper.GetString("JWT_SECRET")
	config.JWT.ExpiryHours = viper.GetInt("JWT_EXPIRY_HOURS")

	config.Jobs.ExpirySweepSchedule = viper.GetString("EXPIRY_SWEEP_SCHEDULE")
	config.Jobs.ExpiryWarningSchedule = viper.GetString("EXPIRY_WARNING_SCHEDULE")
	config.Jobs.DailyReminderSchedule = viper.GetString("DAILY_REMINDER_SCHEDULE")
	config.Jobs.MonthlyReportSchedule = viper.GetString("MONTHLY_REPORT_SCHEDULE")

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
