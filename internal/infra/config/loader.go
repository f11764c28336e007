package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/bootstrap"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/consts"
	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/httpserver"
)

// Environment overrides applied after the file is decoded.
const (
	EnvDBHost         = "TASKBOARD_DB_HOST"
	EnvDBPort         = "TASKBOARD_DB_PORT"
	EnvDBRootPassword = "TASKBOARD_DB_ROOT_PASSWORD"
	EnvDBAppPassword  = "TASKBOARD_DB_APP_PASSWORD"
	EnvHTTPAddress    = "TASKBOARD_HTTP_ADDRESS"
)

type Loader struct {
	env        string
	configPath string
	lookupEnv  func(string) (string, bool)
}

func NewLoader(env string, configPath string) *Loader {
	if env == "" {
		env = consts.ENV_DEVELOPMENT
	}
	if configPath == "" {
		configPath = consts.DEFAULT_CONFIG_PATH
	}
	return &Loader{env: env, configPath: configPath, lookupEnv: os.LookupEnv}
}

// LoadConfig decodes the YAML or JSON file, then applies environment overrides.
func (l *Loader) LoadConfig() (*AppConfig, error) {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	switch ext := strings.ToLower(filepath.Ext(l.configPath)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if cfg.APPInfo == nil {
		cfg.APPInfo = &APPInfo{}
	}
	if cfg.APPInfo.ENV == "" {
		cfg.APPInfo.ENV = l.env
	}
	if err := l.mergeEnvVars(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (l *Loader) mergeEnvVars(cfg *AppConfig) error {
	db := func() *bootstrap.Config {
		if cfg.Database == nil {
			cfg.Database = &bootstrap.Config{}
		}
		return cfg.Database
	}
	if v, ok := l.lookupEnv(EnvDBHost); ok && v != "" {
		db().Host = v
	}
	if v, ok := l.lookupEnv(EnvDBPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDBPort, err)
		}
		db().Port = port
	}
	if v, ok := l.lookupEnv(EnvDBRootPassword); ok {
		db().Root.Password = v
	}
	if v, ok := l.lookupEnv(EnvDBAppPassword); ok {
		db().App.Password = v
	}
	if v, ok := l.lookupEnv(EnvHTTPAddress); ok && v != "" {
		if cfg.HTTPServer == nil {
			cfg.HTTPServer = &httpserver.Config{}
		}
		cfg.HTTPServer.Address = v
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
