package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	InternalToken     string `mapstructure:"INTERNAL_TOKEN"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Storage: "mongo" or "memory".
	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DatabaseName  string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Reminder scheduling.
	Timezone               string `mapstructure:"TIMEZONE"`
	MenuUpdateReminderTime string `mapstructure:"MENU_UPDATE_REMINDER_TIME"`
	OrderReminderTime      string `mapstructure:"ORDER_REMINDER_TIME"`
	ReminderDedup          string `mapstructure:"REMINDER_DEDUP"`
	SchedulerEnabled       bool   `mapstructure:"SCHEDULER_ENABLED"`
	RetentionDays          int    `mapstructure:"RETENTION_DAYS"`

	// Dispatch.
	ChannelSendTimeout  time.Duration `mapstructure:"CHANNEL_SEND_TIMEOUT"`
	DispatchConcurrency int           `mapstructure:"DISPATCH_CONCURRENCY"`

	// Push.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Email: "none", "smtp" or "graph".
	EmailProvider string `mapstructure:"EMAIL_PROVIDER"`
	EmailFrom     string `mapstructure:"EMAIL_FROM"`
	SMTPHost      string `mapstructure:"SMTP_HOST"`
	SMTPPort      string `mapstructure:"SMTP_PORT"`
	SMTPUsername  string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword  string `mapstructure:"SMTP_PASSWORD"`
	GraphTenantID string `mapstructure:"GRAPH_TENANT_ID"`
	GraphClientID string `mapstructure:"GRAPH_CLIENT_ID"`
	GraphSecret   string `mapstructure:"GRAPH_CLIENT_SECRET"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// setDefaults registers every key. Unmarshal only sees environment values
// for keys viper already knows, so a key without a default is never read
// from the environment.
func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("INTERNAL_TOKEN", "")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("STORAGE_DRIVER", "mongo")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "lunchbox")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("MENU_UPDATE_REMINDER_TIME", "11:00")
	v.SetDefault("ORDER_REMINDER_TIME", "10:30")
	v.SetDefault("REMINDER_DEDUP", "mongo")
	v.SetDefault("SCHEDULER_ENABLED", true)
	v.SetDefault("RETENTION_DAYS", 30)
	v.SetDefault("CHANNEL_SEND_TIMEOUT", "10s")
	v.SetDefault("DISPATCH_CONCURRENCY", 8)
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("EMAIL_PROVIDER", "none")
	v.SetDefault("EMAIL_FROM", "")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", "465")
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("GRAPH_TENANT_ID", "")
	v.SetDefault("GRAPH_CLIENT_ID", "")
	v.SetDefault("GRAPH_CLIENT_SECRET", "")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location resolves TIMEZONE, falling back to the server's local zone.
func Location() *time.Location {
	if AppConfig.Timezone == "" || AppConfig.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		log.Printf("invalid TIMEZONE %q, using local time: %v", AppConfig.Timezone, err)
		return time.Local
	}
	return loc
}
