// Package config loads the application configuration file.
package config

type ConfigManager struct {
	configLoader *Loader
	validator    *Validator
	appConfig    *AppConfig
}

func NewConfigManager(env string, configPath string) *ConfigManager {
	return &ConfigManager{
		configLoader: NewLoader(env, configPath),
		validator:    NewValidator(),
	}
}

func (cf *ConfigManager) GetConfig() *AppConfig {
	return cf.appConfig
}

func (cf *ConfigManager) LoadConfig() error {
	if err := cf.validator.validateConfigFilePath(cf.configLoader.configPath); err != nil {
		return err
	}
	cfg, err := cf.configLoader.LoadConfig()
	if err != nil {
		return err
	}
	if err := cf.validator.ValidateAppConfig(cfg); err != nil {
		return err
	}
	cf.appConfig = cfg
	return nil
}
