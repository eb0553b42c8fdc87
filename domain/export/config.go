package export

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

type ExportConfig struct {
	// APIKeyHash is a bcrypt hash; when set, exports require a matching X-API-Key header.
	APIKeyHash string `envconfig:"EXPORT_API_KEY_HASH"`
	// EscapeCSV doubles embedded quotes so the output parses as RFC 4180.
	EscapeCSV bool `envconfig:"EXPORT_CSV_ESCAPE" default:"false"`
}

func LoadExportConfig() (*ExportConfig, error) {
	var cfg ExportConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load export config: %w", err)
	}

	if cfg.APIKeyHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.APIKeyHash)); err != nil {
			return nil, fmt.Errorf("EXPORT_API_KEY_HASH is not a bcrypt hash: %w", err)
		}
	}

	return &cfg, nil
}

func (c *ExportConfig) Protected() bool {
	return c.APIKeyHash != ""
}
