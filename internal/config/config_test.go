package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Auth: AuthConfig{
			JWTSecret: strings.Repeat("s", 32),
		},
		Moderation: ModerationConfig{
			ReadChunkSize:   100,
			DeleteChunkSize: 200,
			MaxUploadBytes:  1 << 20,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "short jwt secret",
			mutate:  func(c *Config) { c.Auth.JWTSecret = "short" },
			wantErr: true,
		},
		{
			name:    "zero read chunk size",
			mutate:  func(c *Config) { c.Moderation.ReadChunkSize = 0 },
			wantErr: true,
		},
		{
			name:    "negative delete chunk size",
			mutate:  func(c *Config) { c.Moderation.DeleteChunkSize = -1 },
			wantErr: true,
		},
		{
			name:    "zero upload cap",
			mutate:  func(c *Config) { c.Moderation.MaxUploadBytes = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
