package sms

import (
	"context"
	"testing"

	"github.com/melbooking/melbooking_backend/config"
)

func TestNewFromConfig(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.SMSConfig
		wantEnabled bool
		wantErr     bool
	}{
		{
			name: "disabled",
			cfg:  config.SMSConfig{Enabled: false},
		},
		{
			name:    "enabled without api key",
			cfg:     config.SMSConfig{Enabled: true, SMSIR: config.SMSIRConfig{TemplateID: "100"}},
			wantErr: true,
		},
		{
			name:    "enabled without template",
			cfg:     config.SMSConfig{Enabled: true, SMSIR: config.SMSIRConfig{APIKey: "k"}},
			wantErr: true,
		},
		{
			name:        "enabled",
			cfg:         config.SMSConfig{Enabled: true, SMSIR: config.SMSIRConfig{APIKey: "k", SecretKey: "s", TemplateID: "100"}},
			wantEnabled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewFromConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewFromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && client.IsEnabled() != tt.wantEnabled {
				t.Errorf("IsEnabled() = %v, want %v", client.IsEnabled(), tt.wantEnabled)
			}
		})
	}
}

func TestSendTemplate_DisabledClient(t *testing.T) {
	client := &Client{enabled: false}

	if err := client.SendTemplate(context.Background(), "+61412345678", map[string]string{"name": "Ava"}); err != nil {
		t.Errorf("Expected no error for disabled client, got: %v", err)
	}
}

func TestSendTemplate_Validation(t *testing.T) {
	client := &Client{enabled: true, templateID: "100"}

	tests := []struct {
		name   string
		phone  string
		params map[string]string
	}{
		{"empty phone number", "", map[string]string{"name": "Ava"}},
		{"no parameters", "+61412345678", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := client.SendTemplate(context.Background(), tt.phone, tt.params); err == nil {
				t.Error("Expected error but got nil")
			}
		})
	}
}
