package postgres

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort           = 5432
	defaultConnectTimeout = 500 * time.Millisecond
	defaultSlowThreshold  = 200 * time.Millisecond
)

// Options describes one pool against one database under one credential pair.
type Options struct {
	Name           string            `yaml:"-" json:"-"`
	Host           string            `yaml:"host" json:"host"`
	Port           int               `yaml:"port" json:"port"`
	Database       string            `yaml:"database" json:"database"`
	User           string            `yaml:"user" json:"user"`
	Password       string            `yaml:"password" json:"password"`
	MaxConns       int               `yaml:"max_conns" json:"max_conns"`
	ConnectTimeout time.Duration     `yaml:"connect_timeout" json:"connect_timeout"`
	Params         map[string]string `yaml:"params" json:"params"`

	LogLevel      string        `yaml:"log_level" json:"log_level"` // silent|error|warn|info
	SlowThreshold time.Duration `yaml:"slow_threshold" json:"slow_threshold"`
}

func (o *Options) applyDefaults() {
	if o.Port == 0 {
		o.Port = defaultPort
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = defaultConnectTimeout
	}
	if o.SlowThreshold <= 0 {
		o.SlowThreshold = defaultSlowThreshold
	}
	if o.Name == "" {
		o.Name = o.Database
	}
}

func (o *Options) validate() error {
	if o.MaxConns <= 0 {
		return fmt.Errorf("max_conns must be > 0, got %d", o.MaxConns)
	}
	if strings.TrimSpace(o.Host) == "" || strings.TrimSpace(o.User) == "" || strings.TrimSpace(o.Database) == "" {
		return errors.New("host, user and database are required")
	}
	return nil
}

// URL renders the options as a postgres:// connection string. sslmode defaults to disable.
func (o Options) URL() string {
	port := o.Port
	if port == 0 {
		port = defaultPort
	}
	q := url.Values{}
	keys := make([]string, 0, len(o.Params))
	for k := range o.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		q.Set(k, o.Params[k])
	}
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "disable")
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(o.User, o.Password),
		Host:     net.JoinHostPort(o.Host, strconv.Itoa(port)),
		Path:     "/" + o.Database,
		RawQuery: q.Encode(),
	}
	return u.String()
}
