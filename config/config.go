package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Booking BookingConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

// BookingConfig holds the scheduling-engine policy knobs.
type BookingConfig struct {
	// DefaultSlotMinutes applies when an availability record carries no
	// slot duration.
	DefaultSlotMinutes int
	// LockTTL bounds how long a per-doctor/date booking lock may live.
	LockTTL time.Duration
	// ResetReminderOnReschedule clears reminder_sent on the replacement
	// appointment created by a reschedule.
	ResetReminderOnReschedule bool
	// Timezone is the clinic's local zone. Appointment dates and times are
	// wall-clock values in this zone, and the lead-time rules compare
	// against the current time in it.
	Timezone *time.Location
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	lockTTL, err := time.ParseDuration(viper.GetString("BOOKING_LOCK_TTL"))
	if err != nil {
		lockTTL = 5 * time.Second
	}

	slotMinutes := viper.GetInt("BOOKING_DEFAULT_SLOT_MINUTES")
	if slotMinutes <= 0 {
		slotMinutes = 30
	}

	resetReminder := true
	if viper.IsSet("BOOKING_RESET_REMINDER_ON_RESCHEDULE") {
		resetReminder = viper.GetBool("BOOKING_RESET_REMINDER_ON_RESCHEDULE")
	}

	timezone := time.UTC
	if name := viper.GetString("BOOKING_TIMEZONE"); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("invalid BOOKING_TIMEZONE %q: %w", name, err)
		}
		timezone = loc
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		Booking: BookingConfig{
			DefaultSlotMinutes:        slotMinutes,
			LockTTL:                   lockTTL,
			ResetReminderOnReschedule: resetReminder,
			Timezone:                  timezone,
		},
	}

	return config, nil
}
