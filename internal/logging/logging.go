package logging

import (
	"go.uber.org/zap"
)

// New builds the application logger. Production config emits JSON,
// anything else gets the human-readable development encoder.
func New(env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.DisableStacktrace = true
	return cfg.Build()
}
