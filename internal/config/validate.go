package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Moderation.validate(); err != nil {
		return fmt.Errorf("moderation: %w", err)
	}

	return nil
}

func (m *ModerationConfig) validate() error {
	if m.ReadChunkSize <= 0 {
		return fmt.Errorf("read_chunk_size must be > 0 (got %d)", m.ReadChunkSize)
	}
	if m.DeleteChunkSize <= 0 {
		return fmt.Errorf("delete_chunk_size must be > 0 (got %d)", m.DeleteChunkSize)
	}
	if m.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be > 0 (got %d)", m.MaxUploadBytes)
	}
	return nil
}
