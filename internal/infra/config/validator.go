package config

import (
	"fmt"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/consts"
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAppConfig checks required sections and value ranges. Defaults are
// applied to the database section so the ranges are checked on final values.
func (v *Validator) ValidateAppConfig(cfg *AppConfig) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if cfg.APPInfo == nil || cfg.APPInfo.APPName == "" {
		return fmt.Errorf("app_info.app_name is required")
	}
	if err := v.validateEnv(cfg.APPInfo.ENV); err != nil {
		return err
	}
	if cfg.Logging == nil || !cfg.Logging.Enabled {
		return fmt.Errorf("logging section is required and must be enabled")
	}
	if cfg.Database == nil || !cfg.Database.Enabled {
		return fmt.Errorf("database section is required and must be enabled")
	}
	cfg.Database.ApplyDefaults()
	if err := cfg.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if cfg.BizConfig != nil && cfg.BizConfig.TenantID < 0 {
		return fmt.Errorf("biz_config.tenant_id must be >= 0, got %d", cfg.BizConfig.TenantID)
	}
	if p := cfg.Telemetry; p != nil && p.Enabled && p.SampleRatio < 0 {
		return fmt.Errorf("telemetry.sample_ratio must be >= 0")
	}
	return nil
}

func (v *Validator) validateConfigFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("config file path cannot be empty")
	}
	if len(path) > 255 {
		return fmt.Errorf("config file path is too long")
	}
	if !fileExists(path) {
		return fmt.Errorf("config file does not exist: %s", path)
	}
	return nil
}

func (v *Validator) validateEnv(env string) error {
	switch env {
	case consts.ENV_DEVELOPMENT, consts.ENV_PRODUCTION, consts.ENV_TEST:
		return nil
	}
	return fmt.Errorf("running environment is not valid: %q", env)
}
