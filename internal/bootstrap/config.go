package bootstrap

import (
	"fmt"
	"time"

	"github.com/grand-thief-cash/chaos/app/projects/taskboard/internal/infra/postgres"
)

// Credentials selects a database and the role used to reach it.
type Credentials struct {
	Database string `yaml:"database" json:"database"`
	User     string `yaml:"user" json:"user"`
	Password string `yaml:"password" json:"password"`
	MaxConns int    `yaml:"max_conns" json:"max_conns"`
}

type ScriptsConfig struct {
	Enabled        bool   `yaml:"enabled" json:"enabled"`
	ScriptDir      string `yaml:"script_dir" json:"script_dir"`
	RecreateScript string `yaml:"recreate_script" json:"recreate_script"`
	ScriptExt      string `yaml:"script_ext" json:"script_ext"`
}

// Config is the database section of the application config.
type Config struct {
	Enabled        bool              `yaml:"enabled" json:"enabled"`
	Host           string            `yaml:"host" json:"host"`
	Port           int               `yaml:"port" json:"port"`
	ConnectTimeout time.Duration     `yaml:"connect_timeout" json:"connect_timeout"`
	Params         map[string]string `yaml:"params" json:"params"`
	Root           Credentials       `yaml:"root" json:"root"`
	App            Credentials       `yaml:"app" json:"app"`
	Bootstrap      ScriptsConfig     `yaml:"bootstrap" json:"bootstrap"`
	LogLevel       string            `yaml:"log_level" json:"log_level"`
	SlowThreshold  time.Duration     `yaml:"slow_threshold" json:"slow_threshold"`
}

// ApplyDefaults fills the local development settings for anything left empty.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 500 * time.Millisecond
	}
	c.Root.defaults("postgres", "postgres", "postgres", 1)
	c.App.defaults("app_db", "app_user", "app_pwd_to_change", 5)
	if c.Bootstrap.ScriptDir == "" {
		c.Bootstrap.ScriptDir = "sql"
	}
	if c.Bootstrap.RecreateScript == "" {
		c.Bootstrap.RecreateScript = "sql/00-recreate-db.sql"
	}
	if c.Bootstrap.ScriptExt == "" {
		c.Bootstrap.ScriptExt = ".sql"
	}
}

func (cr *Credentials) defaults(db, user, password string, maxConns int) {
	if cr.Database == "" {
		cr.Database = db
	}
	if cr.User == "" {
		cr.User = user
	}
	if cr.Password == "" {
		cr.Password = password
	}
	if cr.MaxConns == 0 {
		cr.MaxConns = maxConns
	}
}

func (c *Config) Validate() error {
	if c.Root.MaxConns <= 0 || c.App.MaxConns <= 0 {
		return fmt.Errorf("database max_conns must be > 0 (root=%d app=%d)", c.Root.MaxConns, c.App.MaxConns)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("database port out of range: %d", c.Port)
	}
	return nil
}

func (c *Config) RootOptions() postgres.Options {
	return c.options("root", c.Root)
}

func (c *Config) AppOptions() postgres.Options {
	return c.options("app", c.App)
}

func (c *Config) options(name string, cr Credentials) postgres.Options {
	return postgres.Options{
		Name:           name,
		Host:           c.Host,
		Port:           c.Port,
		Database:       cr.Database,
		User:           cr.User,
		Password:       cr.Password,
		MaxConns:       cr.MaxConns,
		ConnectTimeout: c.ConnectTimeout,
		Params:         c.Params,
		LogLevel:       c.LogLevel,
		SlowThreshold:  c.SlowThreshold,
	}
}
