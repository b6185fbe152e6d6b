package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server           ServerConfig   `toml:"server"`
	Database         DatabaseConfig `toml:"database"`
	Logs             LogsConfig     `toml:"logs"`
	Metrics          MetricsConfig  `toml:"metrics"`
	Booking          BookingConfig  `toml:"booking"`
	Sweeper          SweeperConfig  `toml:"sweeper"`
	CounselorService ServiceConfig  `toml:"counselor_service"`
	NotifierService  ServiceConfig  `toml:"notifier_service"`
	AuditService     ServiceConfig  `toml:"audit_service"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к БД
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig параметры движка бронирования
type BookingConfig struct {
	HoldDurationMinutes     int `toml:"hold_duration_minutes"`
	CancellationCutoffHours int `toml:"cancellation_cutoff_hours"`
	SessionSlotMinutes      int `toml:"session_slot_minutes"`
}

// SweeperConfig настройки фоновой уборки истёкших удержаний
type SweeperConfig struct {
	Enabled         bool `toml:"enabled"`
	IntervalMinutes int  `toml:"interval_minutes"`
}

// ServiceConfig настройки внешнего сервиса
type ServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load %s: %w", path, err)
	}
	return &cfg, nil
}
