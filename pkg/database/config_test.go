package database

import (
	"testing"
	"time"

	"github.com/melbooking/melbooking_backend/config"
)

func TestDSN(t *testing.T) {
	got := NewDSN(config.DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "booking",
		Password: "secret",
		DBName:   "melbooking",
		SSLMode:  "disable",
	})
	want := "host=db port=5432 user=booking password=secret dbname=melbooking sslmode=disable"
	if got != want {
		t.Errorf("NewDSN() = %q, want %q", got, want)
	}
}

func TestConnMaxLifetime(t *testing.T) {
	tests := []struct {
		minutes int
		want    time.Duration
	}{
		{0, 5 * time.Minute},
		{-1, 5 * time.Minute},
		{30, 30 * time.Minute},
	}
	for _, tt := range tests {
		c := Config{ConnMaxLifetimeMin: tt.minutes}
		if got := c.ConnMaxLifetime(); got != tt.want {
			t.Errorf("ConnMaxLifetime(%d) = %v, want %v", tt.minutes, got, tt.want)
		}
	}
}
