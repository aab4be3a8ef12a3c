package config

import (
	"log/slog"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "LOG_LEVEL", "HTTP_ADDR",
		"DB_DRIVER", "DB_DSN", "SQLITE_PATH",
		"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME",
		"MQTT_BROKER", "MQTT_PORT", "MQTT_CLIENT_ID",
		"MQTT_SOURCE_TOPIC", "MQTT_STATE_PREFIX",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.AppEnv != "dev" {
		t.Errorf("AppEnv = %q; want dev", cfg.AppEnv)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v; want info", cfg.LogLevel)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q; want :8080", cfg.HTTPAddr)
	}
	if cfg.SQLiteDriver != "sqlite3" {
		t.Errorf("SQLiteDriver = %q; want sqlite3", cfg.SQLiteDriver)
	}
	if cfg.MQTTBroker != "localhost" || cfg.MQTTPort != 1883 {
		t.Errorf("MQTT broker = %s:%d; want localhost:1883", cfg.MQTTBroker, cfg.MQTTPort)
	}
	if cfg.MQTTSourceTopic != "sensors/+/state" {
		t.Errorf("MQTTSourceTopic = %q; want sensors/+/state", cfg.MQTTSourceTopic)
	}
	if cfg.MQTTStatePrefix != "humidex" {
		t.Errorf("MQTTStatePrefix = %q; want humidex", cfg.MQTTStatePrefix)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("MQTT_BROKER", "broker.lan")
	t.Setenv("MQTT_PORT", "8883")
	t.Setenv("MQTT_SOURCE_TOPIC", "homeassistant/+/+/state")
	t.Setenv("DB_CONN_MAX_LIFETIME", "5m")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.AppEnv != "prod" {
		t.Errorf("AppEnv = %q; want prod", cfg.AppEnv)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v; want debug", cfg.LogLevel)
	}
	if cfg.MQTTBroker != "broker.lan" || cfg.MQTTPort != 8883 {
		t.Errorf("MQTT broker = %s:%d; want broker.lan:8883", cfg.MQTTBroker, cfg.MQTTPort)
	}
	if cfg.SQLiteConnMaxLifetime.Minutes() != 5 {
		t.Errorf("SQLiteConnMaxLifetime = %v; want 5m", cfg.SQLiteConnMaxLifetime)
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad app env", "APP_ENV", "staging"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad mqtt port", "MQTT_PORT", "not-a-port"},
		{"wildcard state prefix", "MQTT_STATE_PREFIX", "humidex/#"},
		{"bad lifetime", "DB_CONN_MAX_LIFETIME", "forever"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := LoadFromEnv(); err == nil {
				t.Errorf("LoadFromEnv with %s=%q succeeded; want error", tt.key, tt.value)
			}
		})
	}
}
