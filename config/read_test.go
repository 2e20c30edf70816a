package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestReadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, "server:\n  port: 9090\n")

	cfg, err := ReadConfig(dir)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Booking.TimeZone != "Australia/Melbourne" {
		t.Errorf("Booking.TimeZone = %q", cfg.Booking.TimeZone)
	}
	if cfg.Booking.DefaultOpen != "10:00" || cfg.Booking.DefaultClose != "20:00" {
		t.Errorf("default hours = %s-%s, want 10:00-20:00", cfg.Booking.DefaultOpen, cfg.Booking.DefaultClose)
	}
	if cfg.Authentication.SessionTTLMinutes != 720 {
		t.Errorf("SessionTTLMinutes = %d, want 720", cfg.Authentication.SessionTTLMinutes)
	}
}

func TestReadConfigRejectsBadTimeZone(t *testing.T) {
	dir := writeConfig(t, "booking:\n  timezone: Mars/Olympus\n")

	if _, err := ReadConfig(dir); err == nil {
		t.Fatal("expected validation error for unknown time zone")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server:         ServerConfig{Port: 8080},
			Booking:        BookingConfig{TimeZone: "Australia/Melbourne", DefaultOpen: "10:00", DefaultClose: "20:00"},
			Authentication: AuthenticationConfig{SessionTTLMinutes: 720, Paseto: PasetoConfig{Mode: "local"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"bad open", func(c *Config) { c.Booking.DefaultOpen = "10am" }, true},
		{"bad paseto mode", func(c *Config) { c.Authentication.Paseto.Mode = "jwt" }, true},
		{"zero session ttl", func(c *Config) { c.Authentication.SessionTTLMinutes = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
